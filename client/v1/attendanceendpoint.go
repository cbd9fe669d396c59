package v1

import (
	"context"
	"time"

	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/client/v1/common"
)

const dateLayout = "2006-01-02"

func rangeQuery(start, end time.Time) map[string]string {
	return map[string]string{"startDate": start.Format(dateLayout), "endDate": end.Format(dateLayout)}
}

type AttendanceEndpoint struct {
	transport *Transport
}

func (e *AttendanceEndpoint) CheckIn(ctx context.Context, officeID int32, lat, lng float64) (*common.AttendanceRecordDTO, error) {
	payload := map[string]any{"officeId": officeID, "latitude": lat, "longitude": lng}
	res, err := decode[common.SuccessResponse[common.AttendanceRecordDTO]](e.transport.Post(ctx, "/api/v1/attendance/check-in", payload))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AttendanceEndpoint) CheckOut(ctx context.Context, lat, lng float64, notes *string) (*common.AttendanceRecordDTO, error) {
	payload := map[string]any{"latitude": lat, "longitude": lng, "notes": notes}
	res, err := decode[common.SuccessResponse[common.AttendanceRecordDTO]](e.transport.Post(ctx, "/api/v1/attendance/check-out", payload))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AttendanceEndpoint) Status(ctx context.Context) (*common.AttendanceStatusDTO, error) {
	res, err := decode[common.SuccessResponse[common.AttendanceStatusDTO]](e.transport.Get(ctx, "/api/v1/attendance/status", nil))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AttendanceEndpoint) History(ctx context.Context, start, end time.Time) ([]common.AttendanceRecordDTO, error) {
	res, err := decode[common.SearchResponse[common.AttendanceRecordDTO]](e.transport.Get(ctx, "/api/v1/attendance/history", rangeQuery(start, end)))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (e *AttendanceEndpoint) MyStats(ctx context.Context, start, end time.Time) (*core.UserAttendanceStats, error) {
	res, err := decode[common.SuccessResponse[core.UserAttendanceStats]](e.transport.Get(ctx, "/api/v1/attendance/stats/me", rangeQuery(start, end)))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}
