package schedulerRepo

import (
	"carebook/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSchedulerRepo implements SchedulerRepository using MongoDB sessions
// over the providers and reservations collections.
type MongoSchedulerRepo struct {
	providerColl    *mongo.Collection
	reservationColl *mongo.Collection
}

// NewMongoSchedulerRepo creates a new instance of SchedulerRepository using MongoDB.
func NewMongoSchedulerRepo() SchedulerRepository {
	return &MongoSchedulerRepo{
		providerColl:    database.Collection("providers"),
		reservationColl: database.Collection("reservations"),
	}
}
