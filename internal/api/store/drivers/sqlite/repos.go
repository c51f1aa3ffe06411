package sqlite

import "github.com/aussiebroadwan/healthmate/internal/api/store"

// repos binds every repository to one DBTX, either the pool or an open
// transaction.
type repos struct {
	db DBTX
}

func (r repos) Users() store.Users                 { return &usersRepo{db: r.db} }
func (r repos) BMILogs() store.BMILogs             { return &bmiLogsRepo{db: r.db} }
func (r repos) BMRLogs() store.BMRLogs             { return &bmrLogsRepo{db: r.db} }
func (r repos) HeartRateLogs() store.HeartRateLogs { return &heartRateLogsRepo{db: r.db} }
func (r repos) WaterLogs() store.WaterLogs         { return &waterLogsRepo{db: r.db} }
func (r repos) WaterGoals() store.WaterGoals       { return &waterGoalsRepo{db: r.db} }
