// ABOUTME: SQL schema definition and initialization.
// ABOUTME: Defines tables for users, profiles, workout/meal plans, and check-ins.
package storage

// initSchema creates or updates the database schema.
// Plans are unique per (user, date); check-ins are only indexed.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		onboarded INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		day_name TEXT NOT NULL,
		exercises TEXT NOT NULL,
		estimated_duration INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		ai_insight TEXT,
		generated_at TEXT NOT NULL,
		UNIQUE (user_id, date),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS meal_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		meals TEXT NOT NULL,
		total_calories REAL NOT NULL DEFAULT 0,
		total_protein REAL NOT NULL DEFAULT 0,
		total_carbs REAL NOT NULL DEFAULT 0,
		total_fats REAL NOT NULL DEFAULT 0,
		logged INTEGER NOT NULL DEFAULT 0,
		logged_at TEXT,
		generated_at TEXT NOT NULL,
		UNIQUE (user_id, date),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS checkins (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		workout_completed TEXT,
		nutrition_status TEXT,
		actual_calories REAL,
		weight REAL,
		sleep_quality INTEGER,
		soreness_level TEXT,
		energy_level INTEGER,
		notes TEXT,
		submitted_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_workout_plans_user_date ON workout_plans(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_meal_plans_user_date ON meal_plans(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_checkins_user_date ON checkins(user_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
