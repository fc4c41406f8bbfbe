package learnhub

import "context"

type CourseRepository interface {
	// FindByIDs returns the courses with the given ids, in the order the ids
	// were given. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []ID) ([]Course, error)
	Store(ctx context.Context, c *Course) error
}

type Course struct {
	ID          ID
	Title       string
	Description string
	Author      string
	Lessons     []Lesson
}

type Lesson struct {
	Title       string
	Description string
	VideoURL    string
	CourseID    ID
}

type PublicCourse struct {
	ID          ID             `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	Lessons     []PublicLesson `json:"lessons"`
}

type PublicLesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	CourseID    ID     `json:"courseId"`
}

func (c *Course) Serialize() PublicCourse {
	lessons := make([]PublicLesson, 0, len(c.Lessons))
	for _, l := range c.Lessons {
		lessons = append(lessons, PublicLesson{
			Title:       l.Title,
			Description: l.Description,
			VideoURL:    l.VideoURL,
			CourseID:    l.CourseID,
		})
	}

	return PublicCourse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Author:      c.Author,
		Lessons:     lessons,
	}
}

// orderByIDs arranges courses to follow ids, dropping ids with no match.
func orderByIDs(ids []ID, courses []Course) []Course {
	byID := make(map[ID]Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	ordered := make([]Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
