package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Venues. university is '' when the venue belongs to no institution.
CREATE TABLE IF NOT EXISTS mensas (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    city TEXT NOT NULL,
    university TEXT NOT NULL DEFAULT '',
    mensa_name TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(city, university, mensa_name)
);

CREATE INDEX IF NOT EXISTS idx_mensas_city ON mensas(city);

-- Menu items, one row per venue, date and natural item key.
-- item_key is 'id:<meal_id>' or 'name:<category>/<item_name>'.
CREATE TABLE IF NOT EXISTS menu_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    mensa_id INTEGER NOT NULL,
    date DATE NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    item_name TEXT NOT NULL,
    item_key TEXT NOT NULL,
    price_students REAL,
    price_staff REAL,
    meal_id TEXT,
    source_html_file TEXT,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (mensa_id) REFERENCES mensas(id) ON DELETE CASCADE,
    UNIQUE(mensa_id, date, item_key)
);

CREATE INDEX IF NOT EXISTS idx_menu_date ON menu_items(date);
CREATE INDEX IF NOT EXISTS idx_menu_mensa_date ON menu_items(mensa_id, date);

-- Archived pages found by the crawler
CREATE TABLE IF NOT EXISTS pages (
    page_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    file_path TEXT NOT NULL,
    title TEXT,
    site_name TEXT,
    language TEXT,
    content_hash TEXT,
    fetched_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_file ON pages(file_path);

-- Crawl runs and their tallies
CREATE TABLE IF NOT EXISTS scrape_runs (
    run_id TEXT PRIMARY KEY,
    start_url TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    requests INTEGER DEFAULT 0,
    archived INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_scrape_runs_started ON scrape_runs(started_at DESC);
`
