package help

// QuickstartYAML is printed by `mensa quickstart`.
const QuickstartYAML = `# mensa quick start

pipeline:
  crawl: "Fetch the menu site and archive every venue page under --data-dir"
  parse: "Extract every archived page into the SQLite database"
  serve: "Expose the database as a JSON API"

commands:
  crawl_everything: |
    mensa crawl

  crawl_sample: |
    mensa crawl --limit 50 --workers 8

  recrawl_today: |
    mensa crawl --overwrite

  load_archive: |
    mensa parse --workers 8

  stream_extract: |
    find data -name '*.html' | mensa extract --format csv > menus.csv

  from_pup: |
    pup 'div.meal json{}' < page.html > meals.json
    echo meals.json | mensa extract --input pup-json

  todays_menus: |
    mensa menus --date 2025-09-08 --city Mainz

  one_venue: |
    mensa menus "georg forster" --format json

  find_venue: |
    mensa venues --search forster

  overview: |
    mensa stats

  api: |
    mensa serve --addr :8080 --cors-origin https://example.org

configuration:
  precedence: "flags > MENSA_* environment > --config file > defaults"
  environment: [MENSA_DB, MENSA_DATA_DIR, MENSA_ADDR, MENSA_WORKERS]
  local_override: "mensa.yaml is merged with mensa.local.yaml when present"

api:
  - "GET /health"
  - "GET /api/menus?date=YYYY-MM-DD&city=&venue=&limit="
  - "GET /api/venues?q="
  - "GET /api/venues/{id}"
  - "GET /api/venues/{id}/menus?date="
  - "GET /api/stats"

exit_codes:
  0: success
  1: usage error or some pages failed
  2: setup failure (database, archive directory)
`
