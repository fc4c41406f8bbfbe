package learnhub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

type dbAccount struct {
	ID        ID        `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	FirstName string    `bson:"firstName"`
	LastName  string    `bson:"lastName"`
	Courses   []ID      `bson:"courses,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

func NewMongoAccountRepository(c *mongo.Collection) Repository {
	return &mongoAccountRepository{collection: c}
}

// EnsureAccountIndexes creates the unique username index that backs
// ErrDuplicateUsername.
func EnsureAccountIndexes(ctx context.Context, c *mongo.Collection) error {
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo create username index: %w", err)
	}
	return nil
}

func (m *mongoAccountRepository) Create(ctx context.Context, na NewAccount) (*Account, error) {
	acc := newAccountFrom(na)
	dba := dbAccountFromAccount(acc)

	if _, err := m.collection.InsertOne(ctx, &dba); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	return acc, nil
}

func (m *mongoAccountRepository) FindByName(ctx context.Context, username string) (*Account, error) {
	return m.findAccountBy(ctx, bson.M{"username": username})
}

func (m *mongoAccountRepository) FindByUsernameAndEmail(ctx context.Context, username, email string) (*Account, error) {
	return m.findAccountBy(ctx, bson.M{"username": username, "email": email})
}

func (m *mongoAccountRepository) CountByUsernameAndEmail(ctx context.Context, username, email string) (int64, error) {
	n, err := m.collection.CountDocuments(ctx, bson.M{"username": username, "email": email})
	if err != nil {
		return 0, fmt.Errorf("mongo count: %w", err)
	}
	return n, nil
}

func (m *mongoAccountRepository) findAccountBy(ctx context.Context, filter bson.M) (*Account, error) {
	var a dbAccount
	err := m.collection.FindOne(ctx, filter).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}

	acc := accountFromDBAccount(a)
	return &acc, nil
}

func dbAccountFromAccount(a *Account) dbAccount {
	return dbAccount{a.ID, a.Username, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.Courses, a.CreatedAt}
}

func accountFromDBAccount(a dbAccount) Account {
	return Account{a.ID, a.Username, a.Email, a.Password, a.FirstName, a.LastName, a.Courses, a.CreatedAt}
}

type mongoCourseRepository struct {
	collection *mongo.Collection
}

type dbLesson struct {
	Title       string `bson:"title"`
	Description string `bson:"description"`
	VideoURL    string `bson:"videoUrl"`
	CourseID    ID     `bson:"courseId"`
}

type dbCourse struct {
	ID          ID         `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Author      string     `bson:"author"`
	Lessons     []dbLesson `bson:"lessons,omitempty"`
}

func NewMongoCourseRepository(c *mongo.Collection) CourseRepository {
	return &mongoCourseRepository{collection: c}
}

func (m *mongoCourseRepository) Store(ctx context.Context, c *Course) error {
	if c.ID == "" {
		c.ID = nextID()
	}

	dbc := dbCourse{ID: c.ID, Title: c.Title, Description: c.Description, Author: c.Author}
	for _, l := range c.Lessons {
		dbc.Lessons = append(dbc.Lessons, dbLesson(l))
	}

	if _, err := m.collection.InsertOne(ctx, &dbc); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (m *mongoCourseRepository) FindByIDs(ctx context.Context, ids []ID) ([]Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []dbCourse
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	courses := make([]Course, 0, len(docs))
	for _, d := range docs {
		c := Course{ID: d.ID, Title: d.Title, Description: d.Description, Author: d.Author}
		for _, l := range d.Lessons {
			c.Lessons = append(c.Lessons, Lesson(l))
		}
		courses = append(courses, c)
	}
	return orderByIDs(ids, courses), nil
}
