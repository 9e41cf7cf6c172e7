// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/dalemusser/statcard/internal/app/system/tracing"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// The chart engine registry, its Registration and the trace provider share
// the app's lifetime: created once at connect time, used by every request.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	ChartRegistry *chartengine.Registry
	ChartReg      *statcard.Registration

	Tracing *tracing.Provider
}
