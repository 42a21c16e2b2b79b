package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Alias de tipos para facilitar el acceso
type Application = models.Application

var (
	ErrApplicationManagerNotInitialized = errors.New("application data manager not initialized")
	ErrApplicationNotFound              = errors.New("solicitud no encontrada")
	ErrApplicationAlreadyResolved       = errors.New("la solicitud ya fue resuelta")
)

func getApplicationManager() (*DataManager[models.Application], error) {
	if GlobalApplicationDM == nil {
		return nil, ErrApplicationManagerNotInitialized
	}
	return GlobalApplicationDM, nil
}

// CreateApplication stores a new pending application keyed by the ID of
// the review message posted for it
func CreateApplication(app models.Application) (*models.Application, error) {
	dm, err := getApplicationManager()
	if err != nil {
		return nil, err
	}

	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = time.Now()
	}

	result, err := dm.Set(bson.M{"_id": app.MessageID}, app)
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Solicitud registrada para %s (mensaje %s)", app.Username, app.MessageID), "Applications")
	return result, nil
}

// GetApplication returns the application whose review message has the
// given ID, or ErrApplicationNotFound
func GetApplication(messageID string) (*models.Application, error) {
	dm, err := getApplicationManager()
	if err != nil {
		return nil, err
	}

	app, err := dm.Get(bson.M{"_id": messageID})
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// ResolveApplication moves a pending application to a terminal status.
// The status transition is a compare-and-set on the pending state, so a
// second reviewer pressing a stale button gets ErrApplicationAlreadyResolved
// instead of overwriting the first resolution
func ResolveApplication(messageID string, status models.ApplicationStatus, reviewerID, resolvedName, reason string) (*models.Application, error) {
	dm, err := getApplicationManager()
	if err != nil {
		return nil, err
	}
	if !dm.dbInstance.Connected() || dm.col() == nil {
		return nil, fmt.Errorf("database not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":        status,
		"reviewer_id":   reviewerID,
		"resolved_name": resolvedName,
		"reason":        reason,
		"reviewed_at":   now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var result models.Application
	err = dm.col().FindOneAndUpdate(ctx,
		bson.M{"_id": messageID, "status": models.StatusPending},
		update, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Either the record never existed or it is already terminal;
			// a plain lookup tells the two apart
			if _, lookupErr := GetApplication(messageID); lookupErr != nil {
				return nil, lookupErr
			}
			return nil, ErrApplicationAlreadyResolved
		}
		return nil, err
	}

	// The conditional update bypasses the cache path, drop any stale copy
	dm.ClearCache()

	logger.Info(fmt.Sprintf("Solicitud %s resuelta como %s por %s", messageID, status, reviewerID), "Applications")
	return &result, nil
}

// CountByStatus returns how many applications currently hold a status
func CountByStatus(status models.ApplicationStatus) (int64, error) {
	dm, err := getApplicationManager()
	if err != nil {
		return 0, err
	}
	return dm.Count(bson.M{"status": status})
}

// PendingApplications returns every application still waiting for review
func PendingApplications() ([]*models.Application, error) {
	dm, err := getApplicationManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{"status": models.StatusPending})
}
