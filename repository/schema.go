package repository

// Foreign keys carry no ON DELETE rules: the engine sends explicit detach and
// delete operations, and a forgotten one fails the whole unit.

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trips (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL,
	name           TEXT NOT NULL,
	destination    TEXT NOT NULL DEFAULT '',
	departure_date TEXT NOT NULL DEFAULT '',
	return_date    TEXT NOT NULL DEFAULT '',
	price          REAL NOT NULL DEFAULT 0,
	status         TEXT NOT NULL DEFAULT 'active',
	created_at     DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trips_owner ON trips(owner_id);

CREATE TABLE IF NOT EXISTS clients (
	id           TEXT PRIMARY KEY,
	owner_id     TEXT NOT NULL,
	trip_id      TEXT REFERENCES trips(id),
	full_name    TEXT NOT NULL,
	national_id  TEXT NOT NULL DEFAULT '',
	secondary_id TEXT,
	birth_date   TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT,
	address      TEXT NOT NULL DEFAULT '',
	notes        TEXT,
	status       TEXT NOT NULL DEFAULT 'pending',
	created_at   DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id);

CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	client_id  TEXT NOT NULL REFERENCES clients(id),
	trip_id    TEXT REFERENCES trips(id),
	total      REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_payments_owner ON payments(owner_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_client_trip ON payments(client_id, trip_id);

CREATE TABLE IF NOT EXISTS installments (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	payment_id TEXT NOT NULL REFERENCES payments(id),
	position   INTEGER NOT NULL,
	amount     REAL NOT NULL,
	method     TEXT NOT NULL,
	paid_on    TEXT NOT NULL,
	note       TEXT
);
CREATE INDEX IF NOT EXISTS idx_installments_payment ON installments(payment_id, position);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS trips (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL,
	name           TEXT NOT NULL,
	destination    TEXT NOT NULL DEFAULT '',
	departure_date TEXT NOT NULL DEFAULT '',
	return_date    TEXT NOT NULL DEFAULT '',
	price          NUMERIC(12,2) NOT NULL DEFAULT 0,
	status         TEXT NOT NULL DEFAULT 'active',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trips_owner ON trips(owner_id);

CREATE TABLE IF NOT EXISTS clients (
	id           TEXT PRIMARY KEY,
	owner_id     TEXT NOT NULL,
	trip_id      TEXT REFERENCES trips(id),
	full_name    TEXT NOT NULL,
	national_id  TEXT NOT NULL DEFAULT '',
	secondary_id TEXT,
	birth_date   TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT,
	address      TEXT NOT NULL DEFAULT '',
	notes        TEXT,
	status       TEXT NOT NULL DEFAULT 'pending',
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id);

CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	client_id  TEXT NOT NULL REFERENCES clients(id),
	trip_id    TEXT REFERENCES trips(id),
	total      NUMERIC(12,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_payments_owner ON payments(owner_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_client_trip ON payments(client_id, trip_id);

CREATE TABLE IF NOT EXISTS installments (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	payment_id TEXT NOT NULL REFERENCES payments(id),
	position   INTEGER NOT NULL,
	amount     NUMERIC(12,2) NOT NULL,
	method     TEXT NOT NULL,
	paid_on    TEXT NOT NULL,
	note       TEXT
);
CREATE INDEX IF NOT EXISTS idx_installments_payment ON installments(payment_id, position);
`
