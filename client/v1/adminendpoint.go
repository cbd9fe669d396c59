package v1

import (
	"context"
	"fmt"
	"time"

	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/client/v1/common"
)

type AdminEndpoint struct {
	transport *Transport
}

func (e *AdminEndpoint) Users(ctx context.Context) ([]common.UserDTO, error) {
	res, err := decode[common.SearchResponse[common.UserDTO]](e.transport.Get(ctx, "/api/v1/admin/users", nil))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (e *AdminEndpoint) UpdateRole(ctx context.Context, userID int32, role string) (*common.RoleChangeDTO, error) {
	res, err := decode[common.SuccessResponse[common.RoleChangeDTO]](e.transport.Put(ctx, fmt.Sprintf("/api/v1/admin/users/%d/role", userID), map[string]string{"role": role}))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AdminEndpoint) ForceCheckOut(ctx context.Context, userID int32, lat, lng float64, notes *string) (*common.AttendanceRecordDTO, error) {
	payload := map[string]any{"latitude": lat, "longitude": lng, "notes": notes}
	res, err := decode[common.SuccessResponse[common.AttendanceRecordDTO]](e.transport.Post(ctx, fmt.Sprintf("/api/v1/admin/attendance/force-checkout/%d", userID), payload))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AdminEndpoint) DepartmentStats(ctx context.Context, start, end time.Time) (*core.DepartmentAttendanceStats, error) {
	res, err := decode[common.SuccessResponse[core.DepartmentAttendanceStats]](e.transport.Get(ctx, "/api/v1/admin/stats/department", rangeQuery(start, end)))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (e *AdminEndpoint) Statistics(ctx context.Context, start, end time.Time) (*core.AdminStatistics, error) {
	res, err := decode[common.SuccessResponse[core.AdminStatistics]](e.transport.Get(ctx, "/api/v1/admin/statistics", rangeQuery(start, end)))
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// Export downloads the xlsx report.
func (e *AdminEndpoint) Export(ctx context.Context, start, end time.Time) ([]byte, error) {
	resp, err := e.transport.Get(ctx, "/api/v1/admin/export", rangeQuery(start, end))
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
