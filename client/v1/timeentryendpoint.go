package v1

import (
	"context"
	"fmt"
	"time"

	"timekeeper.app/timekeeper/client/v1/common"
)

type TimeEntryEndpoint struct {
	transport *Transport
}

func (e *TimeEntryEndpoint) Log(ctx context.Context, dto common.TimeEntryDTO) (*common.TimeEntryDTO, error) {
	res, err := decode[common.SuccessResponse[common.TimeEntryDTO]](e.transport.Post(ctx, "/api/v1/time-entries", dto))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *TimeEntryEndpoint) Update(ctx context.Context, dto common.TimeEntryDTO) (*common.TimeEntryDTO, error) {
	res, err := decode[common.SuccessResponse[common.TimeEntryDTO]](e.transport.Put(ctx, fmt.Sprintf("/api/v1/time-entries/%s", dto.ID), dto))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *TimeEntryEndpoint) List(ctx context.Context, start, end time.Time) ([]common.TimeEntryDTO, error) {
	res, err := decode[common.SearchResponse[common.TimeEntryDTO]](e.transport.Get(ctx, "/api/v1/time-entries", rangeQuery(start, end)))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (e *TimeEntryEndpoint) MonthlyTotal(ctx context.Context, year int, month time.Month) (float64, error) {
	res, err := decode[common.SuccessResponse[struct {
		Total float64 `json:"total"`
	}]](e.transport.Get(ctx, fmt.Sprintf("/api/v1/time-entries/monthly-total/%d/%d", year, int(month)), nil))
	if err != nil {
		return 0, err
	}
	return res.Data.Total, nil
}
