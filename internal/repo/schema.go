package repo

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_name     TEXT      NOT NULL,
	item_name         TEXT      NOT NULL,
	quantity          INTEGER   NOT NULL CHECK (quantity BETWEEN 1 AND 1000),
	total_price_cents INTEGER   NOT NULL CHECK (total_price_cents BETWEEN 1 AND 100000000),
	created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id                BIGSERIAL    PRIMARY KEY,
	customer_name     VARCHAR(100) NOT NULL,
	item_name         VARCHAR(200) NOT NULL,
	quantity          INTEGER      NOT NULL CHECK (quantity BETWEEN 1 AND 1000),
	total_price_cents BIGINT       NOT NULL CHECK (total_price_cents BETWEEN 1 AND 100000000),
	created_at        TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`

const ordersIndex = `CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC, id DESC)`

// lockOrders blocks other writers until the transaction ends, reads stay allowed.
const lockOrders = `LOCK TABLE orders IN EXCLUSIVE MODE`
