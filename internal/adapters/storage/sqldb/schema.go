package sqldb

import "strings"

// Las fechas de calendario van como TEXT 'YYYY-MM-DD' y los instantes como
// unix nanos en BIGINT, así ambos motores comparan y ordenan igual.
const schemaTemplate = `
CREATE TABLE IF NOT EXISTS pets (
	{{seq}},
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	species TEXT NOT NULL DEFAULT '',
	breed TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	contact_number TEXT NOT NULL DEFAULT '',
	microchip TEXT NOT NULL DEFAULT '',
	owner TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	federation TEXT NOT NULL DEFAULT '',
	photo TEXT NOT NULL DEFAULT '',
	photo_thumbnail TEXT NOT NULL DEFAULT '',
	procedures TEXT NOT NULL DEFAULT '[]',
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS appointments (
	{{seq}},
	id TEXT NOT NULL UNIQUE,
	pet_id TEXT NOT NULL,
	owner TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT '',
	vet TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	completed_at TEXT
);

CREATE TABLE IF NOT EXISTS prescriptions (
	{{seq}},
	id TEXT NOT NULL UNIQUE,
	pet_id TEXT NOT NULL,
	pet_name TEXT NOT NULL DEFAULT '',
	owner TEXT NOT NULL DEFAULT '',
	drug TEXT NOT NULL,
	dosage TEXT NOT NULL DEFAULT '',
	directions TEXT NOT NULL DEFAULT '',
	prescriber TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	dispensed {{bool}} NOT NULL DEFAULT {{false}},
	dispensed_at TEXT
);

CREATE TABLE IF NOT EXISTS users (
	{{seq}},
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	role TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS op_log (
	{{seq}},
	id TEXT NOT NULL UNIQUE,
	ts_unix_nano BIGINT NOT NULL,
	day TEXT NOT NULL,
	type TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	pet_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS op_log_day_idx ON op_log (day, ts_unix_nano, seq);
`

func schema(d Dialect) []string {
	seq, boolType, falseLit := "seq BIGSERIAL PRIMARY KEY", "BOOLEAN", "FALSE"
	if d == SQLite {
		seq, boolType, falseLit = "seq INTEGER PRIMARY KEY AUTOINCREMENT", "INTEGER", "0"
	}

	ddl := strings.NewReplacer(
		"{{seq}}", seq,
		"{{bool}}", boolType,
		"{{false}}", falseLit,
	).Replace(schemaTemplate)

	out := make([]string, 0)
	for _, stmt := range strings.Split(ddl, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
