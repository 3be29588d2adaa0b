package services

import (
	"context"

	"homekeep/models"
)

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardCounts are the headline numbers on the dashboard.
type DashboardCounts struct {
	Items             int64 `json:"items"`
	Locations         int64 `json:"locations"`
	DueReminders      int   `json:"due_reminders"`
	UpcomingReminders int   `json:"upcoming_reminders"`
}

type DashboardStats struct {
	Counts               DashboardCounts            `json:"counts"`
	CategoryDistribution []CategoryCount            `json:"category_distribution"`
	LocationStats        []models.LocationItemCount `json:"location_stats"`
}

// StatsService aggregates dashboard numbers from the other stores.
type StatsService struct {
	items     ItemStore
	locations LocationStore
	reminders *ReminderService
}

func NewStatsService(items ItemStore, locations LocationStore, reminders *ReminderService) *StatsService {
	return &StatsService{items: items, locations: locations, reminders: reminders}
}

// Dashboard assembles the counts, the category distribution and the top five
// locations by item count for one owner.
func (s *StatsService) Dashboard(ctx context.Context, ownerID uint) (*DashboardStats, error) {
	itemCount, err := s.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	locationCount, err := s.locations.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	due, err := s.reminders.Due(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.reminders.Upcoming(ctx, ownerID, 7)
	if err != nil {
		return nil, err
	}

	distribution, err := s.categoryDistribution(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	popular, err := s.locations.PopularByItemCount(ctx, ownerID, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Counts: DashboardCounts{
			Items:             itemCount,
			Locations:         locationCount,
			DueReminders:      len(due),
			UpcomingReminders: len(upcoming),
		},
		CategoryDistribution: distribution,
		LocationStats:        popular,
	}, nil
}

// PopularLocations ranks the owner's locations by how many items they hold.
func (s *StatsService) PopularLocations(ctx context.Context, ownerID uint, limit int) ([]models.LocationItemCount, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.locations.PopularByItemCount(ctx, ownerID, limit)
}

func (s *StatsService) categoryDistribution(ctx context.Context, ownerID uint) ([]CategoryCount, error) {
	items, err := s.items.Search(ctx, models.ItemFilter{UserID: ownerID})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	bump := func(name string) {
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}
	for _, item := range items {
		if len(item.Categories) == 0 {
			bump("uncategorized")
			continue
		}
		for _, c := range item.Categories {
			bump(c)
		}
	}

	out := make([]CategoryCount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryCount{Name: name, Value: counts[name]})
	}
	return out, nil
}
