// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	broker TEXT NOT NULL,
	currency TEXT NOT NULL,
	starting_balance REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(account_id),
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	lot_size REAL NOT NULL,
	stop_loss REAL,
	take_profit REAL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	profit REAL NOT NULL,
	pips REAL NOT NULL,
	pip_value REAL NOT NULL,
	is_win BOOLEAN NOT NULL,
	rrr REAL,
	estimated BOOLEAN NOT NULL,
	reasons TEXT NOT NULL,
	setup TEXT NOT NULL,
	notes TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);
CREATE INDEX IF NOT EXISTS idx_trades_account_close ON trades(account_id, close_time);
`

// postgresSchema holds the same tables for Postgres, one statement each.
var postgresSchema = []string{
	`create table if not exists accounts (
		account_id text primary key,
		name text not null,
		broker text not null default '',
		currency text not null,
		starting_balance double precision not null default 0,
		created_at timestamptz not null default now()
	);`,
	`create table if not exists trades (
		trade_id text primary key,
		account_id text not null references accounts(account_id),
		symbol text not null,
		direction text not null,
		entry_price double precision not null,
		exit_price double precision not null,
		lot_size double precision not null,
		stop_loss double precision null,
		take_profit double precision null,
		open_time timestamptz not null,
		close_time timestamptz not null,
		profit double precision not null,
		pips double precision not null,
		pip_value double precision not null,
		is_win boolean not null,
		rrr double precision null,
		estimated boolean not null default false,
		reasons text not null default '',
		setup text not null default '',
		notes text not null default '',
		created_at timestamptz not null default now()
	);`,
	`create index if not exists trades_close_time_idx on trades(close_time);`,
	`create index if not exists trades_account_close_idx on trades(account_id, close_time);`,
}

const tradeColumns = `trade_id, account_id, symbol, direction, entry_price, exit_price, lot_size,
	stop_loss, take_profit, open_time, close_time, profit, pips, pip_value, is_win,
	rrr, estimated, reasons, setup, notes, created_at`

const accountColumns = `account_id, name, broker, currency, starting_balance, created_at`
