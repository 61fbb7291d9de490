package services

import (
	"errors"
	"math"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostsPerPage is the fixed feed page size
const PostsPerPage = 10

// Page is one slice of a feed plus what a paginator widget needs
type Page struct {
	Posts      []models.Post
	Number     int
	TotalPages int
	TotalCount int64
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a following page exists
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// paginatePosts runs the same filter twice, once for the count and once for
// the page itself. Page numbers outside [1, TotalPages] yield an empty page,
// never an error. Ordering is newest first with id as tiebreak so posts
// created in the same instant still page deterministically.
func paginatePosts(filter func(*gorm.DB) *gorm.DB, page int) (Page, error) {
	var total int64
	if err := filter(db.DB.Model(&models.Post{})).Count(&total).Error; err != nil {
		return Page{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(PostsPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	result := Page{
		Posts:      []models.Post{},
		Number:     page,
		TotalPages: totalPages,
		TotalCount: total,
	}

	if page < 1 || page > totalPages {
		return result, nil
	}

	err := filter(db.DB.Preload("Author").Preload("Group")).
		Order("created_at DESC, id DESC").
		Limit(PostsPerPage).
		Offset((page - 1) * PostsPerPage).
		Find(&result.Posts).Error
	if err != nil {
		return Page{}, err
	}

	fillCommentCounts(result.Posts)
	return result, nil
}

// fillCommentCounts batch-loads comment counts for a page of posts
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// GlobalFeed returns one page of all posts, newest first
func GlobalFeed(page int) (Page, error) {
	return paginatePosts(func(q *gorm.DB) *gorm.DB { return q }, page)
}

// GroupFeed resolves a group by slug and returns one page of its posts
func GroupFeed(slug string, page int) (models.Group, Page, error) {
	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return group, Page{}, ErrNotFound
		}
		return group, Page{}, err
	}

	result, err := paginatePosts(func(q *gorm.DB) *gorm.DB {
		return q.Where("group_id = ?", group.ID)
	}, page)
	return group, result, err
}

// ProfileFeed resolves an author by username and returns one page of their
// posts. The following flag is only meaningful when viewerID > 0 (an
// authenticated viewer); guests always get false.
func ProfileFeed(username string, viewerID uint, page int) (models.User, Page, bool, error) {
	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return author, Page{}, false, ErrNotFound
		}
		return author, Page{}, false, err
	}

	result, err := paginatePosts(func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id = ?", author.ID)
	}, page)
	if err != nil {
		return author, Page{}, false, err
	}

	following := false
	if viewerID > 0 {
		following = IsFollowing(viewerID, author.ID)
	}

	return author, result, following, nil
}

// FollowFeed returns one page of posts by the authors the viewer follows
func FollowFeed(viewerID uint, page int) (Page, error) {
	return paginatePosts(func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id IN (?)",
			db.DB.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", viewerID))
	}, page)
}

// PostDetail returns a post with its comments newest first and the author's
// total post count
func PostDetail(id uint) (models.Post, int64, []models.Comment, error) {
	var post models.Post
	if err := db.DB.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, 0, nil, ErrNotFound
		}
		return post, 0, nil, err
	}

	var postCount int64
	if err := db.DB.Model(&models.Post{}).Where("author_id = ?", post.AuthorID).Count(&postCount).Error; err != nil {
		return post, 0, nil, err
	}

	var comments []models.Comment
	if err := db.DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		return post, 0, nil, err
	}

	return post, postCount, comments, nil
}
