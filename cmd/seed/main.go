package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/config"
	"github.com/riverton-pd/roster-manager/backend/internal/repository"
	"github.com/riverton-pd/roster-manager/backend/internal/seed"
	"github.com/riverton-pd/roster-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random officers, 2: insert random recurring entries, 3: load demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, so ping explicitly.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please provide a valid officer count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				officer, err := utils.GenerateRandomOfficer(cfg.Seed.Officer.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("failed to generate random officer", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateOfficer(officer); err != nil {
					slog.Error("failed to insert officer", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("officers inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("please provide a valid entry count")
			return
		}

		officers, err := repo.GetAllOfficers()
		if err != nil {
			slog.Error("failed to fetch officers", slog.String("error", err.Error()))
			return
		}
		shiftTypes, err := repo.GetAllShiftTypes()
		if err != nil {
			slog.Error("failed to fetch shift types", slog.String("error", err.Error()))
			return
		}
		if len(officers) == 0 || len(shiftTypes) == 0 {
			slog.Error("seed officers and shift types first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			officer := officers[rand.Intn(len(officers))]
			st := shiftTypes[rand.Intn(len(shiftTypes))]

			entry := utils.GenerateRandomRecurringEntry(officer.ID, st.ID, int32(rand.Intn(7)))
			if err := repo.CreateRecurringEntry(entry); err != nil {
				slog.Error("failed to insert recurring entry", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("recurring entries inserted", slog.Int("count", n-cnt))
	case 3:
		seed.SeedDemoData(repo, cfg.Seed.Officer.Password)
	default:
		slog.Error("unknown operation")
	}
}
