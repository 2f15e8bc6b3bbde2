package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/ports/driver"
	"github.com/aryaman-sowilo/spine-attendance/internal/record"
)

// SwipeSubmission is one requested correction. Nil times fall back to the
// default shift.
type SwipeSubmission struct {
	Date    model.Date       `json:"date"`
	InTime  *model.TimeOfDay `json:"inTime,omitempty"`
	OutTime *model.TimeOfDay `json:"outTime,omitempty"`
	Reason  string           `json:"reason"`
}

// BatchItem is the outcome of one submission in a batch.
type BatchItem struct {
	Date    model.Date `json:"date"`
	Success bool       `json:"success"`
	Message string     `json:"message"`
}

// BatchReport summarizes a batch submission run.
type BatchReport struct {
	Total       int         `json:"total"`
	Successful  int         `json:"successful"`
	Failed      int         `json:"failed"`
	SuccessRate string      `json:"successRate"`
	Message     string      `json:"message"`
	Items       []BatchItem `json:"items"`
}

// SubmitSwipe validates and files one swipe application. Validation failures
// come back as errors before any driver call is made.
func (s *ReconcileService) SubmitSwipe(ctx context.Context, sub SwipeSubmission) (driver.SwipeResult, error) {
	today := model.DateOf(s.now())
	if err := record.ValidateSwipeRequest(sub.Date, today, sub.Reason); err != nil {
		return driver.SwipeResult{}, err
	}

	req := driver.SwipeRequest{
		Date:    sub.Date,
		InTime:  record.DefaultShiftIn,
		OutTime: record.DefaultShiftOut,
		Reason:  sub.Reason,
	}
	if sub.InTime != nil {
		req.InTime = *sub.InTime
	}
	if sub.OutTime != nil {
		req.OutTime = *sub.OutTime
	}

	result, err := s.driver.SubmitSwipe(ctx, req)
	if err != nil {
		return driver.SwipeResult{}, fmt.Errorf("failed to submit swipe for %s: %w", sub.Date, err)
	}
	return result, nil
}

// SubmitBatchSwipes files each submission in order and summarizes the run.
// One failure never aborts the rest of the batch.
func (s *ReconcileService) SubmitBatchSwipes(ctx context.Context, subs []SwipeSubmission) BatchReport {
	report := BatchReport{Total: len(subs)}

	for _, sub := range subs {
		item := BatchItem{Date: sub.Date}
		result, err := s.SubmitSwipe(ctx, sub)
		switch {
		case err != nil:
			item.Message = err.Error()
		case !result.Success:
			item.Message = result.Message
		default:
			item.Success = true
			item.Message = result.Message
		}
		if item.Success {
			report.Successful++
		} else {
			report.Failed++
			log.Ctx(ctx).Warn().Str("date", sub.Date.String()).Str("reason", item.Message).Msg("Swipe submission failed")
		}
		report.Items = append(report.Items, item)
	}

	if report.Total > 0 {
		report.SuccessRate = fmt.Sprintf("%.0f%%", float64(report.Successful)/float64(report.Total)*100)
	} else {
		report.SuccessRate = "0%"
	}
	switch {
	case report.Total == 0:
		report.Message = "No swipe applications to submit."
	case report.Failed == 0:
		report.Message = fmt.Sprintf("All %d swipe applications submitted successfully.", report.Total)
	default:
		report.Message = fmt.Sprintf("Submitted %d of %d swipe applications; %d failed.", report.Successful, report.Total, report.Failed)
	}
	return report
}
