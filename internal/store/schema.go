package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS activity_days (
    source               TEXT NOT NULL,
    day                  TEXT NOT NULL,
    active_secs          INTEGER NOT NULL,
    PRIMARY KEY (source, day)
);

CREATE TABLE IF NOT EXISTS hour_totals (
    source               TEXT NOT NULL,
    weekday              INTEGER NOT NULL,
    hour                 INTEGER NOT NULL,
    active_secs          INTEGER NOT NULL,
    PRIMARY KEY (source, weekday, hour)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_day ON activity_days(day);
`
