// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nutrition-advisor/internal/models"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS profiles (
        user_id TEXT PRIMARY KEY,
        age INTEGER NOT NULL,
        gender TEXT NOT NULL,
        height_cm REAL NOT NULL,
        weight_kg REAL NOT NULL,
        goal TEXT NOT NULL,
        activity_level TEXT NOT NULL DEFAULT '',
        allergies TEXT NOT NULL DEFAULT '[]',
        updated_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS meal_records (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        day TEXT NOT NULL,
        recipe_id TEXT NOT NULL,
        portion REAL NOT NULL,
        status TEXT NOT NULL,
        calories REAL NOT NULL DEFAULT 0,
        protein REAL NOT NULL DEFAULT 0,
        fat REAL NOT NULL DEFAULT 0,
        carbs REAL NOT NULL DEFAULT 0,
        fiber REAL NOT NULL DEFAULT 0,
        sugar REAL NOT NULL DEFAULT 0,
        sodium REAL NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS ingredient_aliases (
        user_id TEXT NOT NULL,
        raw_name TEXT NOT NULL,
        canonical_name TEXT NOT NULL,
        updated_at DATETIME NOT NULL,
        PRIMARY KEY (user_id, raw_name)
    );

    CREATE INDEX IF NOT EXISTS idx_meal_records_user_day ON meal_records(user_id, day);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) SaveProfile(userID string, p *models.Profile) error {
	allergies, err := json.Marshal(p.Allergies)
	if err != nil {
		return fmt.Errorf("failed to encode allergies: %w", err)
	}

	query := `
        INSERT INTO profiles (user_id, age, gender, height_cm, weight_kg, goal, activity_level, allergies, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            age = excluded.age,
            gender = excluded.gender,
            height_cm = excluded.height_cm,
            weight_kg = excluded.weight_kg,
            goal = excluded.goal,
            activity_level = excluded.activity_level,
            allergies = excluded.allergies,
            updated_at = excluded.updated_at
    `
	_, err = s.db.Exec(query,
		userID, p.Age, string(p.Gender), p.HeightCm, p.WeightKg,
		string(p.Goal), p.ActivityLevel, string(allergies),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetProfile(userID string) (*models.Profile, error) {
	query := `
        SELECT age, gender, height_cm, weight_kg, goal, activity_level, allergies
        FROM profiles
        WHERE user_id = ?
    `

	p := &models.Profile{}
	var gender, goal, allergiesJSON string
	err := s.db.QueryRow(query, userID).Scan(
		&p.Age, &gender, &p.HeightCm, &p.WeightKg, &goal, &p.ActivityLevel, &allergiesJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile not found for user %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	p.Gender = models.NormalizeGender(gender)
	p.Goal = models.NormalizeGoal(goal)
	if err := json.Unmarshal([]byte(allergiesJSON), &p.Allergies); err != nil {
		return nil, fmt.Errorf("failed to decode allergies: %w", err)
	}
	return p, nil
}

func (s *SQLiteStorage) SaveMealRecord(rec *models.MealRecord) error {
	query := `
        INSERT INTO meal_records (id, user_id, day, recipe_id, portion, status, calories, protein, fat, carbs, fiber, sugar, sodium, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		rec.ID, rec.UserID, rec.Day, rec.RecipeID, rec.Portion, string(rec.Status),
		rec.Nutrition.Calories, rec.Nutrition.Protein, rec.Nutrition.Fat,
		rec.Nutrition.Carbs, rec.Nutrition.Fiber, rec.Nutrition.Sugar,
		rec.Nutrition.Sodium, rec.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert meal record: %w", err)
	}
	return nil
}

// GetMealRecords returns the user's meal records between startDay and endDay
// (inclusive, YYYY-MM-DD, empty bounds skipped), grouped by day in ascending
// order — the shape the consumption aggregator consumes.
func (s *SQLiteStorage) GetMealRecords(userID, startDay, endDay string) ([]models.DayLog, error) {
	query := `
        SELECT id, user_id, day, recipe_id, portion, status, calories, protein, fat, carbs, fiber, sugar, sodium, created_at
        FROM meal_records
        WHERE user_id = ?
    `
	args := []interface{}{userID}

	if startDay != "" {
		query += " AND day >= ?"
		args = append(args, startDay)
	}
	if endDay != "" {
		query += " AND day <= ?"
		args = append(args, endDay)
	}
	query += " ORDER BY day ASC, created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal records: %w", err)
	}
	defer rows.Close()

	var days []models.DayLog
	for rows.Next() {
		rec := models.MealRecord{}
		var status, createdAtStr string

		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Day, &rec.RecipeID, &rec.Portion, &status,
			&rec.Nutrition.Calories, &rec.Nutrition.Protein, &rec.Nutrition.Fat,
			&rec.Nutrition.Carbs, &rec.Nutrition.Fiber, &rec.Nutrition.Sugar,
			&rec.Nutrition.Sodium, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal record: %w", err)
		}

		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		rec.Status = models.MealStatus(status)

		if len(days) == 0 || days[len(days)-1].Day != rec.Day {
			days = append(days, models.DayLog{Day: rec.Day})
		}
		days[len(days)-1].Meals = append(days[len(days)-1].Meals, rec)
	}

	return days, rows.Err()
}

// PutAlias remembers a user's ingredient-mapping choice so later lookups can
// skip the remote matcher.
func (s *SQLiteStorage) PutAlias(userID, rawName, canonicalName string) error {
	query := `
        INSERT INTO ingredient_aliases (user_id, raw_name, canonical_name, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(user_id, raw_name) DO UPDATE SET
            canonical_name = excluded.canonical_name,
            updated_at = excluded.updated_at
    `
	if _, err := s.db.Exec(query, userID, rawName, canonicalName, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save alias: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetAlias(userID, rawName string) (string, bool, error) {
	var canonical string
	err := s.db.QueryRow(
		"SELECT canonical_name FROM ingredient_aliases WHERE user_id = ? AND raw_name = ?",
		userID, rawName).Scan(&canonical)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query alias: %w", err)
	}
	return canonical, true, nil
}
