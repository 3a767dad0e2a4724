package sqlc

import "time"

// Upper bound for a single analytics round trip issued by a session.
const QuerierCtxTimeout = time.Second * 10

// DbManager is what the rest of the server holds on to; a nil
// *DbManager means the server runs without a database.
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(db DBTX) *DbManager {
	return &DbManager{
		Analytics: NewAnalyticsManager(New(db)),
	}
}
