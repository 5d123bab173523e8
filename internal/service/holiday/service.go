package holiday

import (
	"context"
	"log/slog"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/holiday"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	logger *slog.Logger
}

func NewHolidayService(repo holiday.HolidayRepository, logger *slog.Logger) holiday.HolidayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HolidayServiceImpl{
		HolidayRepository: repo,
		logger:            logger.With("component", "holiday"),
	}
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	days, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]holiday.HolidayResponse, 0, len(days))
	for _, d := range days {
		resp = append(resp, holiday.NewHolidayResponse(d))
	}
	return resp, nil
}

// Add implements holiday.HolidayService.
func (s *HolidayServiceImpl) Add(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	h := holiday.Holiday{Date: req.Day}
	if err := s.HolidayRepository.Create(ctx, h); err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.logger.Info("Holiday added", "date", req.Date)
	return holiday.NewHolidayResponse(h), nil
}

// Remove implements holiday.HolidayService.
func (s *HolidayServiceImpl) Remove(ctx context.Context, date string) error {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	if err := s.HolidayRepository.Delete(ctx, day); err != nil {
		return err
	}

	s.logger.Info("Holiday removed", "date", date)
	return nil
}
