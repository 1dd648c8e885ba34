package store

import (
	"context"
	"log"

	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/utils"
)

// Seed loads a demo college with staff accounts, a hall and a
// GRID seminar so a fresh in-memory process is immediately usable.
// It is a no-op when the store already has colleges.
func (m *MemStore) Seed(ctx context.Context, bcryptCost int) error {
	existing, err := m.ListColleges(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	college := &model.College{Name: "Tech Institute of Science"}
	if err := m.CreateCollege(ctx, college); err != nil {
		return err
	}

	hash, err := utils.HashPassword("password123", bcryptCost)
	if err != nil {
		return err
	}
	for _, u := range []model.User{
		{CollegeID: college.ID, Username: "superadmin", PasswordHash: hash, Role: model.RoleSuperAdmin},
		{CollegeID: college.ID, Username: "admin", PasswordHash: hash, Role: model.RoleAdmin},
		{CollegeID: college.ID, Username: "guard", PasswordHash: hash, Role: model.RoleGuard},
	} {
		u := u
		if err := m.CreateUser(ctx, &u); err != nil {
			return err
		}
	}

	hall := &model.Hall{
		CollegeID: college.ID,
		Name:      "Main Auditorium",
		Rows: []model.HallRow{
			{Label: "A", Seats: 10},
			{Label: "B", Seats: 10},
			{Label: "C", Seats: 12},
		},
		TotalSeats: 32,
	}
	if err := m.CreateHall(ctx, hall); err != nil {
		return err
	}

	seminar := &model.Seminar{
		CollegeID:     college.ID,
		Slug:          "ai-future-tech",
		Title:         "AI & Future of Tech",
		Description:   "A deep dive into Artificial Intelligence trends.",
		Date:          "2025-05-15",
		Time:          "10:00",
		Venue:         "Conference Room 1",
		SeatingSource: model.SeatingGrid,
		RowConfig:     map[int]int{1: 10, 2: 10, 3: 10, 4: 10, 5: 10},
	}
	if err := m.CreateSeminar(ctx, seminar); err != nil {
		return err
	}
	log.Printf("seeded demo college id=%d seminar=%q hall=%q", college.ID, seminar.Slug, hall.Name)
	return nil
}
