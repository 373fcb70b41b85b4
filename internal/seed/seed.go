package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewdesk/staffing/backend/internal/config"
	"github.com/crewdesk/staffing/backend/internal/domain"
	"github.com/crewdesk/staffing/backend/internal/repository"
	"github.com/crewdesk/staffing/backend/internal/utils"
)

// SeedDemoData inserts a small but coherent data set for local development: a
// client, a pool of workers, two upcoming shifts with requirements, and one
// finished shift populated through the import path so its timesheet can be
// walked through the approval workflow by hand.
func SeedDemoData(cfg *config.Config, repo *repository.Repository) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("unable to hash seed password", slog.String("error", err.Error()))
		return
	}

	client := &domain.User{
		Username:     "client.demo",
		PasswordHash: string(passwordHash),
		FullName:     "Demo Client",
		Email:        "client.demo@example.com",
		Role:         domain.RoleClient,
	}
	if err := repo.CreateUser(client); err != nil {
		slog.Error("unable to insert demo client", slog.String("error", err.Error()))
		return
	}

	workerIDs := make([]int64, 0, 8)
	for i := 0; i < 8; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password)
		if err != nil {
			slog.Error("unable to generate worker", slog.String("error", err.Error()))
			continue
		}
		user.Role = domain.RoleWorker

		if err := repo.CreateUser(user); err != nil {
			slog.Error("unable to insert worker", slog.String("error", err.Error()))
			continue
		}
		workerIDs = append(workerIDs, user.ID)
	}
	if len(workerIDs) < 4 {
		slog.Error("not enough workers inserted to build shifts", slog.Int("count", len(workerIDs)))
		return
	}

	// two upcoming shifts with a manual requirement set
	for i := 0; i < 2; i++ {
		shift := utils.GenerateRandomShift(&client.ID)
		if err := repo.CreateShift(shift); err != nil {
			slog.Error("unable to insert shift", slog.String("error", err.Error()))
			continue
		}

		counts, err := domain.NormalizeRequirements(map[domain.RoleCode]int32{
			domain.RoleStageHand:    int32(rand.Intn(4) + 2),
			domain.RoleForkOperator: int32(rand.Intn(2) + 1),
			domain.RoleGeneralLabor: int32(rand.Intn(3) + 1),
		})
		if err != nil {
			slog.Error("unable to build requirement set", slog.String("error", err.Error()))
			continue
		}
		if err := repo.ReplaceRequirements(shift.ID, counts); err != nil {
			slog.Error("unable to insert requirements", slog.String("error", err.Error()))
			continue
		}

		slog.Info("inserted upcoming shift", slog.Int64("shiftID", shift.ID), slog.String("job", shift.JobName))
	}

	// one finished shift filled through the import path
	finished := utils.GenerateRandomShift(&client.ID)
	finished.StartTime = time.Now().Add(-24 * time.Hour).Truncate(time.Hour)
	finished.EndTime = finished.StartTime.Add(8 * time.Hour)
	if err := repo.CreateShift(finished); err != nil {
		slog.Error("unable to insert finished shift", slog.String("error", err.Error()))
		return
	}

	batch := utils.GenerateRandomImportBatch(finished, workerIDs[:4])
	records, ve := utils.ParseImportRecords(batch)
	if len(ve) > 0 {
		slog.Error("generated import batch failed validation", slog.Any("errors", ve))
		return
	}

	summary, err := repo.SyncShiftFromImport(finished, records)
	if err != nil {
		slog.Error("unable to sync finished shift", slog.String("error", err.Error()))
		return
	}

	slog.Info("inserted finished shift",
		slog.Int64("shiftID", finished.ID),
		slog.Int("personnel", int(summary.PersonnelWritten)),
		slog.Int("timeEntries", int(summary.TimeEntriesCreated)),
	)
}
