package database

// schema is the full DDL. The UNIQUE constraint on recommendations
// (customer_id, product_id) backs the engine's idempotency contract: inserts
// are best-effort and conflicts are silently ignored.
const schema = `
CREATE TABLE IF NOT EXISTS insurers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	website TEXT,
	customer_care TEXT,
	claim_settlement_ratio TEXT NOT NULL DEFAULT '0',
	solvency_ratio TEXT NOT NULL DEFAULT '0',
	established_year INTEGER,
	headquarters TEXT,
	rating TEXT NOT NULL DEFAULT '0',
	rating_agency TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	insurer_id INTEGER NOT NULL REFERENCES insurers(id),
	product_type TEXT NOT NULL,
	description TEXT,
	features TEXT NOT NULL DEFAULT '[]',
	benefits TEXT NOT NULL DEFAULT '[]',
	exclusions TEXT NOT NULL DEFAULT '[]',
	min_age INTEGER NOT NULL,
	max_age INTEGER NOT NULL,
	min_sum_assured TEXT NOT NULL,
	max_sum_assured TEXT NOT NULL,
	premium_frequency TEXT,
	policy_term_options TEXT NOT NULL DEFAULT '[]',
	premium_paying_term_options TEXT NOT NULL DEFAULT '[]',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(product_type);
CREATE INDEX IF NOT EXISTS idx_products_age ON products(min_age, max_age);

CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT UNIQUE,
	age INTEGER NOT NULL,
	gender TEXT NOT NULL,
	occupation TEXT,
	annual_income TEXT NOT NULL DEFAULT '0',
	family_size INTEGER NOT NULL DEFAULT 0,
	dependents INTEGER NOT NULL DEFAULT 0,
	existing_coverage TEXT NOT NULL DEFAULT '0',
	risk_appetite TEXT NOT NULL DEFAULT 'medium',
	debt_obligations TEXT NOT NULL DEFAULT '0',
	children_education_needs TEXT NOT NULL DEFAULT '0',
	retirement_needs TEXT NOT NULL DEFAULT '0',
	emergency_fund_needs TEXT NOT NULL DEFAULT '0',
	inflation_rate TEXT NOT NULL DEFAULT '6',
	return_rate TEXT NOT NULL DEFAULT '8',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS needs_analysis (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL UNIQUE REFERENCES customers(id),
	human_life_value TEXT NOT NULL,
	income_replacement_needs TEXT NOT NULL,
	family_expenses TEXT NOT NULL,
	debt_obligations TEXT NOT NULL,
	children_education_needs TEXT NOT NULL,
	retirement_needs TEXT NOT NULL,
	emergency_fund_needs TEXT NOT NULL,
	total_insurance_needs TEXT NOT NULL,
	existing_coverage TEXT NOT NULL,
	additional_coverage_needed TEXT NOT NULL,
	analysis_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS recommendations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL REFERENCES customers(id),
	product_id INTEGER NOT NULL REFERENCES products(id),
	sum_assured TEXT NOT NULL,
	premium_amount TEXT NOT NULL,
	policy_term INTEGER NOT NULL,
	premium_paying_term INTEGER NOT NULL,
	premium_frequency TEXT NOT NULL,
	priority TEXT NOT NULL,
	reasoning TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(customer_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_recommendations_customer ON recommendations(customer_id);

CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	reference TEXT NOT NULL UNIQUE,
	customer_id INTEGER NOT NULL REFERENCES customers(id),
	report_type TEXT NOT NULL,
	content TEXT NOT NULL,
	generated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS market_data (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	insurer_id INTEGER NOT NULL REFERENCES insurers(id),
	date DATE NOT NULL,
	claim_settlement_ratio TEXT NOT NULL DEFAULT '0',
	rating TEXT NOT NULL DEFAULT '0',
	market_share TEXT NOT NULL DEFAULT '0',
	premium_growth TEXT NOT NULL DEFAULT '0',
	customer_satisfaction TEXT NOT NULL DEFAULT '0',
	inflation_rate TEXT NOT NULL DEFAULT '0',
	repo_rate TEXT NOT NULL DEFAULT '0',
	gdp_growth TEXT NOT NULL DEFAULT '0',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(insurer_id, date)
);
CREATE INDEX IF NOT EXISTS idx_market_data_insurer ON market_data(insurer_id, date);
`
