package homepage

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"beltway/internal/models"
)

// makeArticles builds n articles with descending publish times, each
// mutated by the given function.
func makeArticles(n int, mutate func(i int, a *models.Article)) []models.Article {
	now := time.Now()
	cat := &models.Category{ID: uuid.New(), Slug: "politics", Name: "Politics"}
	articles := make([]models.Article, n)
	for i := range articles {
		articles[i] = models.Article{
			ID:          uuid.New(),
			Slug:        fmt.Sprintf("article-%d", i),
			Headline:    fmt.Sprintf("Headline %d", i),
			CategoryID:  cat.ID,
			Category:    cat,
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
		}
		if mutate != nil {
			mutate(i, &articles[i])
		}
	}
	return articles
}

// bucketIDs collects every article identity placed anywhere on the page.
func bucketIDs(p Page) []uuid.UUID {
	var ids []uuid.UUID
	for _, bucket := range [][]models.Article{p.Featured, p.Opinion, p.Main, p.Trending} {
		for _, a := range bucket {
			ids = append(ids, a.ID)
		}
	}
	for _, block := range p.CategoryBlocks {
		for _, a := range block {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestAggregateNoDuplicatePlacement(t *testing.T) {
	// Every article carries every flag, violating the one-flag rule on
	// purpose. Each must still land in exactly one bucket.
	articles := makeArticles(30, func(i int, a *models.Article) {
		a.Featured = true
		a.IsOpinion = true
		a.Main = true
		a.Trending = true
		a.CategoryBlock = true
	})

	page := Aggregate(articles)

	seen := make(map[uuid.UUID]bool)
	for _, id := range bucketIDs(page) {
		if seen[id] {
			t.Errorf("article %s placed in more than one bucket", id)
		}
		seen[id] = true
	}
}

func TestAggregateFeaturedCapDropsOverflow(t *testing.T) {
	articles := makeArticles(6, func(i int, a *models.Article) {
		a.Featured = true
	})

	page := Aggregate(articles)

	if len(page.Featured) != 5 {
		t.Fatalf("featured: got %d, want 5", len(page.Featured))
	}
	// Newest five are taken in order.
	for i := 0; i < 5; i++ {
		if page.Featured[i].ID != articles[i].ID {
			t.Errorf("featured[%d]: got %s, want %s", i, page.Featured[i].Slug, articles[i].Slug)
		}
	}
	// The sixth has no other flag and is dropped entirely.
	sixth := articles[5].ID
	for _, id := range bucketIDs(page) {
		if id == sixth {
			t.Error("overflowing featured article should be dropped")
		}
	}
}

func TestAggregateBucketCaps(t *testing.T) {
	articles := makeArticles(40, func(i int, a *models.Article) {
		switch {
		case i < 8:
			a.IsOpinion = true
		case i < 20:
			a.Main = true
		case i < 28:
			a.Trending = true
		default:
			a.CategoryBlock = true
		}
	})

	page := Aggregate(articles)

	if len(page.Opinion) != 5 {
		t.Errorf("opinion: got %d, want 5", len(page.Opinion))
	}
	if len(page.Main) != 10 {
		t.Errorf("main: got %d, want 10", len(page.Main))
	}
	if len(page.Trending) != 5 {
		t.Errorf("trending: got %d, want 5", len(page.Trending))
	}
	// Category blocks are uncapped.
	if got := len(page.CategoryBlocks["politics"]); got != 12 {
		t.Errorf("category block: got %d, want 12", got)
	}
}

func TestAggregateUnflaggedDropped(t *testing.T) {
	articles := makeArticles(3, nil)

	page := Aggregate(articles)

	if ids := bucketIDs(page); len(ids) != 0 {
		t.Errorf("expected empty page for unflagged articles, got %d placements", len(ids))
	}
}

func TestAggregateOpinionOverflowFallsThrough(t *testing.T) {
	// Six opinion articles, the last also flagged main. When the opinion
	// bucket is full, the next matching flag takes it.
	articles := makeArticles(6, func(i int, a *models.Article) {
		a.IsOpinion = true
		if i == 5 {
			a.Main = true
		}
	})

	page := Aggregate(articles)

	if len(page.Opinion) != 5 {
		t.Fatalf("opinion: got %d, want 5", len(page.Opinion))
	}
	if len(page.Main) != 1 || page.Main[0].ID != articles[5].ID {
		t.Errorf("main: got %d articles, want the overflow opinion piece", len(page.Main))
	}
}

func TestAggregateMissingCategoryExcludedFromBlocks(t *testing.T) {
	articles := makeArticles(2, func(i int, a *models.Article) {
		a.CategoryBlock = true
		if i == 1 {
			a.Category = nil
		}
	})

	page := Aggregate(articles)

	if got := len(page.CategoryBlocks["politics"]); got != 1 {
		t.Errorf("category block: got %d, want 1", got)
	}
	if ids := bucketIDs(page); len(ids) != 1 {
		t.Errorf("expected the category-less article off the page, got %d placements", len(ids))
	}
}

func TestAggregateGroupsBlocksByCategorySlug(t *testing.T) {
	business := &models.Category{ID: uuid.New(), Slug: "business", Name: "Business"}
	articles := makeArticles(4, func(i int, a *models.Article) {
		a.CategoryBlock = true
		if i%2 == 1 {
			a.Category = business
			a.CategoryID = business.ID
		}
	})

	page := Aggregate(articles)

	if got := len(page.CategoryBlocks); got != 2 {
		t.Fatalf("blocks: got %d categories, want 2", got)
	}
	if got := len(page.CategoryBlocks["politics"]); got != 2 {
		t.Errorf("politics block: got %d, want 2", got)
	}
	if got := len(page.CategoryBlocks["business"]); got != 2 {
		t.Errorf("business block: got %d, want 2", got)
	}
}
