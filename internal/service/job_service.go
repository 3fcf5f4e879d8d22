package service

import (
	"fmt"
	"log"
	"time"

	"homeaway/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedStays finds confirmed bookings whose checkout has passed
// and marks them completed.
func (s *JobService) CompleteFinishedStays() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetConfirmedBookingIDsPastCheckout()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past checkout: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their checkout.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, statusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// DeleteStalePendingBookings drops pending bookings created before the given
// time, releasing their dates after an abandoned checkout.
func (s *JobService) DeleteStalePendingBookings(before time.Time) (int64, error) {
	return s.Repo.DeletePendingBookingsOlderThan(before)
}
