package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/config"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/memory"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/mongodb"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/postgresql"
)

// repositories is one document store, whichever driver backs it.
type repositories struct {
	company    company.CompanyRepository
	branch     branch.BranchRepository
	user       user.UserRepository
	shift      shift.ShiftRepository
	leave      leave.LeaveRepository
	attendance attendance.AttendanceRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config, loc *time.Location) (repositories, error) {
	switch cfg.Store.Driver {
	case config.DriverMongoDB:
		db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			return repositories{}, fmt.Errorf("connect mongodb: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = db.Close(ctx)
			return repositories{}, fmt.Errorf("ensure mongodb indexes: %w", err)
		}
		return repositories{
			company:    mongodb.NewCompanyRepository(db),
			branch:     mongodb.NewBranchRepository(db),
			user:       mongodb.NewUserRepository(db),
			shift:      mongodb.NewShiftRepository(db, loc),
			leave:      mongodb.NewLeaveRepository(db, loc),
			attendance: mongodb.NewAttendanceRepository(db),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := db.Close(ctx); err != nil {
					slog.Error("failed to close mongodb", "error", err)
				}
			},
		}, nil

	case config.DriverPostgreSQL:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return repositories{}, fmt.Errorf("connect postgresql: %w", err)
		}
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("ensure postgresql schema: %w", err)
		}
		return repositories{
			company:    postgresql.NewCompanyRepository(db),
			branch:     postgresql.NewBranchRepository(db),
			user:       postgresql.NewUserRepository(db),
			shift:      postgresql.NewShiftRepository(db, loc),
			leave:      postgresql.NewLeaveRepository(db, loc),
			attendance: postgresql.NewAttendanceRepository(db),
			close:      db.Close,
		}, nil

	default:
		slog.Warn("using in-memory store, data is lost on restart")
		return repositories{
			company:    memory.NewCompanyRepository(),
			branch:     memory.NewBranchRepository(),
			user:       memory.NewUserRepository(),
			shift:      memory.NewShiftRepository(),
			leave:      memory.NewLeaveRepository(),
			attendance: memory.NewAttendanceRepository(),
			close:      func() {},
		}, nil
	}
}
