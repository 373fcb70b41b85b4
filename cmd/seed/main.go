package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/crewdesk/staffing/backend/internal/config"
	"github.com/crewdesk/staffing/backend/internal/repository"
	"github.com/crewdesk/staffing/backend/internal/seed"
	"github.com/crewdesk/staffing/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var shiftID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random shifts, 3: sync a random import batch into a shift, 4: insert demo data set)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&shiftID, "shift-id", 0, "shift to sync the random import batch into")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect; ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password)
				if err != nil {
					slog.Error("unable to generate user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("unable to insert user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("inserted users", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("number of shifts must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				shift := utils.GenerateRandomShift(nil)
				if err := repo.CreateShift(shift); err != nil {
					slog.Error("unable to insert shift", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("inserted shifts", slog.Int("count", n-cnt))
		}
	case 3:
		if shiftID <= 0 {
			slog.Error("shift id must be positive")
			return
		}

		shift, err := repo.GetShiftByID(shiftID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("shift does not exist", slog.Int64("shift_id", shiftID))
			default:
				slog.Error("unable to load shift", slog.String("error", err.Error()))
			}
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("unable to load users", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("no users to build the import batch from; run -op 1 first")
			return
		}

		workerIDs := make([]int64, 0, len(users))
		for _, user := range users {
			workerIDs = append(workerIDs, user.ID)
		}
		if n > 0 && n < len(workerIDs) {
			workerIDs = workerIDs[:n]
		}

		batch := utils.GenerateRandomImportBatch(shift, workerIDs)
		records, ve := utils.ParseImportRecords(batch)
		if len(ve) > 0 {
			slog.Error("generated import batch failed validation", slog.Any("errors", ve))
			return
		}

		summary, err := repo.SyncShiftFromImport(shift, records)
		if err != nil {
			slog.Error("unable to sync shift", slog.String("error", err.Error()))
			return
		}

		slog.Info("synced shift from import",
			slog.Int64("shift_id", shiftID),
			slog.Int("personnel", int(summary.PersonnelWritten)),
			slog.Int("timeEntries", int(summary.TimeEntriesCreated)),
		)
	case 4:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
