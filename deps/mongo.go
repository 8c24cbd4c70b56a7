package deps

import (
	"gopkg.in/mgo.v2"
)

var (
	// MongoURL config uri
	MongoURL string
	// MongoName db name
	MongoName string
)

// IgniteMongoDB dials mongo when records live there.
func IgniteMongoDB(container Deps) (Deps, error) {
	if !needsRecords(container) || recordsDriver(container) != "mongo" {
		return container, nil
	}

	MongoURL = container.Config().UString("mongo.url", "mongodb://localhost:27017")
	MongoName = container.Config().UString("mongo.name", "cart")

	session, err := mgo.Dial(MongoURL)
	if err != nil {
		log.Error(err)
		log.Info(MongoURL)
		return container, err
	}

	// See https://godoc.org/gopkg.in/mgo.v2#Session.SetMode
	session.SetMode(mgo.Monotonic, true)

	container.DatabaseSessionProvider = session
	container.DatabaseProvider = session.DB(MongoName)
	return container, nil
}
