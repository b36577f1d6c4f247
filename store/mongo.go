package store

import (
	"context"
	"errors"
	"fmt"

	"civicsync/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	issuesCollection      = "issues"
	countersCollection    = "counters"
	credentialsCollection = "credentials"
	issueSequenceID       = "issues"
)

// issueDocument carries the insertion sequence that keeps store order stable in MongoDB.
type issueDocument struct {
	Seq          int64 `bson:"seq"`
	models.Issue `bson:",inline"`
}

// MongoIssueStore keeps issues in the "issues" collection.
type MongoIssueStore struct {
	issues   *mongo.Collection
	counters *mongo.Collection
}

func NewMongoIssueStore(db *mongo.Database) *MongoIssueStore {
	return &MongoIssueStore{
		issues:   db.Collection(issuesCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureIndexes creates the unique sequence index and the reporter lookup index.
func (s *MongoIssueStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.issues.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "seq", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "reporterId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	return err
}

func (s *MongoIssueStore) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": issueSequenceID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (s *MongoIssueStore) Append(ctx context.Context, issue models.Issue) error {
	seq, err := s.nextSeq(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate issue sequence: %w", err)
	}

	_, err = s.issues.InsertOne(ctx, issueDocument{Seq: seq, Issue: issue})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("failed to insert issue: %w", err)
	}
	return nil
}

func (s *MongoIssueStore) All(ctx context.Context) ([]models.Issue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := s.issues.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve issues: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []issueDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}

	issues := make([]models.Issue, 0, len(docs))
	for _, doc := range docs {
		issues = append(issues, doc.Issue)
	}
	return issues, nil
}

// MongoCredentialStore keeps credentials in the "credentials" collection keyed by email.
type MongoCredentialStore struct {
	credentials *mongo.Collection
}

func NewMongoCredentialStore(db *mongo.Database) *MongoCredentialStore {
	return &MongoCredentialStore{credentials: db.Collection(credentialsCollection)}
}

func (s *MongoCredentialStore) Create(ctx context.Context, cred models.Credential) error {
	_, err := s.credentials.InsertOne(ctx, cred)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (s *MongoCredentialStore) GetByEmail(ctx context.Context, email string) (models.Credential, error) {
	var cred models.Credential
	err := s.credentials.FindOne(ctx, bson.M{"_id": email}).Decode(&cred)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to retrieve credential: %w", err)
	}
	return cred, nil
}
