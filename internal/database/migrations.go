package database

// migrations are applied in slice order; the version is index+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		username TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS receipts (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		s3_bucket TEXT,
		s3_key TEXT,
		original_filename TEXT,
		content_type TEXT,
		file_size_bytes BIGINT,
		status TEXT NOT NULL DEFAULT 'pending',
		vendor TEXT,
		receipt_date TEXT,
		total DOUBLE PRECISION,
		confidence DOUBLE PRECISION,
		ocr_text TEXT,
		error_message TEXT,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		processed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS receipt_items (
		id SERIAL PRIMARY KEY,
		receipt_id INT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
		position INT NOT NULL,
		name TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		unit_price DOUBLE PRECISION NOT NULL,
		total_price DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL DEFAULT 'Other',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_user_id ON receipts(user_id);
	CREATE INDEX IF NOT EXISTS idx_receipt_items_receipt_id ON receipt_items(receipt_id);
	`,
}
