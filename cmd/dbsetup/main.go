package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitstride/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// dbsetup creates the fitstride schema and seeds the exercises reference
// data. Safe to run repeatedly, everything is IF NOT EXISTS / ON CONFLICT.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       SERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone         TEXT,
		country       TEXT,
		city          TEXT,
		address       TEXT,
		postal_code   TEXT,
		height_cm     INT,
		weight_kg     REAL,
		age           INT,
		goals         TEXT,
		occupation    TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS exercises (
		exercise_id  SERIAL PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		muscle_group TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS workouts (
		workout_id   SERIAL PRIMARY KEY,
		user_id      INT NOT NULL REFERENCES users (user_id),
		workout_date DATE NOT NULL,
		UNIQUE (user_id, workout_date)
	);`,
	`CREATE TABLE IF NOT EXISTS workout_exercises (
		id          SERIAL PRIMARY KEY,
		workout_id  INT NOT NULL REFERENCES workouts (workout_id),
		exercise_id INT NOT NULL REFERENCES exercises (exercise_id),
		sets        INT NOT NULL,
		reps        INT NOT NULL,
		weight      REAL NOT NULL,
		distance    REAL
	);`,
	`CREATE TABLE IF NOT EXISTS personal_records (
		id            SERIAL PRIMARY KEY,
		user_id       INT NOT NULL REFERENCES users (user_id),
		exercise_id   INT NOT NULL REFERENCES exercises (exercise_id),
		max_weight    REAL NOT NULL,
		reps          INT NOT NULL,
		achieved_date DATE NOT NULL,
		UNIQUE (user_id, exercise_id)
	);`,
	`CREATE TABLE IF NOT EXISTS weekly_challenges (
		challenge_id SERIAL PRIMARY KEY,
		exercise_id  INT NOT NULL REFERENCES exercises (exercise_id),
		start_date   DATE NOT NULL,
		end_date     DATE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS weekly_challenge_participants (
		id                 SERIAL PRIMARY KEY,
		challenge_id       INT NOT NULL REFERENCES weekly_challenges (challenge_id),
		user_id            INT NOT NULL REFERENCES users (user_id),
		participation_date DATE NOT NULL,
		sets               INT NOT NULL,
		weight             REAL NOT NULL,
		reps               INT NOT NULL,
		distance           REAL
	);`,
	`CREATE TABLE IF NOT EXISTS leaderboard (
		id      SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users (user_id) UNIQUE,
		points  INT NOT NULL DEFAULT 0
	);`,
}

var exerciseSeed = []struct {
	name        string
	muscleGroup string
}{
	{"Bench Press", "chest"},
	{"Incline Dumbbell Press", "chest"},
	{"Cable Fly", "chest"},
	{"Deadlift", "back"},
	{"Barbell Row", "back"},
	{"Lat Pulldown", "back"},
	{"Pull Up", "back"},
	{"Squat", "legs"},
	{"Leg Press", "legs"},
	{"Romanian Deadlift", "legs"},
	{"Calf Raise", "legs"},
	{"Overhead Press", "shoulders"},
	{"Lateral Raise", "shoulders"},
	{"Barbell Curl", "biceps"},
	{"Hammer Curl", "biceps"},
	{"Triceps Pushdown", "triceps"},
	{"Skull Crusher", "triceps"},
	{"Plank", "core"},
	{"Crunch", "core"},
	{"Running", "cardio"},
	{"Cycling", "cardio"},
	{"Rowing", "cardio"},
}

func main() {
	host := flag.String("host", "localhost", "postgres host")
	port := flag.String("port", "5432", "postgres port")
	dbName := flag.String("db", "fitstride", "postgres database name")
	seed := flag.Bool("seed", true, "seed the exercises reference data")
	flag.Parse()

	log.SetOutput(os.Stdout)

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		receivedSig := <-chOsInterrupt
		log.Warnf("signal [%s] received, aborting", receivedSig)
		cancel()
	}()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: *host,
		DBPort: *port,
		DBName: *dbName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if err := createSchema(ctx, dbPool); err != nil {
		log.Fatalf("create schema: %s", err)
	}
	log.Infoln("schema created")

	if *seed {
		if err := seedExercises(ctx, dbPool); err != nil {
			log.Fatalf("seed exercises: %s", err)
		}
		log.Infof("seeded %d exercises", len(exerciseSeed))
	}
}

func createSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := dbPool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

func seedExercises(ctx context.Context, dbPool *pgxpool.Pool) error {
	for _, e := range exerciseSeed {
		if _, err := dbPool.Exec(
			ctx,
			`
				INSERT INTO exercises (name, muscle_group)
				VALUES ($1, $2)
				ON CONFLICT (name) DO NOTHING;`,
			e.name, e.muscleGroup,
		); err != nil {
			return fmt.Errorf("insert exercise %s: %w", e.name, err)
		}
	}
	return nil
}
