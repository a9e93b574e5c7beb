package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"

	articlesv1 "github.com/mwhitley/campusfeed/api/articles/v1"
	"github.com/mwhitley/campusfeed/internal/campusfeed"
	"github.com/mwhitley/campusfeed/internal/digest"
	cferrs "github.com/mwhitley/campusfeed/internal/errors"
	"github.com/mwhitley/campusfeed/internal/grouping"
	"github.com/mwhitley/campusfeed/internal/sync"
)

// API wires the read-path handlers onto a router.
type API struct {
	repo   campusfeed.Repository
	syncer *sync.Syncer

	// Grouped sections are cheap but every pull-to-refresh hits them;
	// a tiny cache keyed by source and clock-hour absorbs the repeats.
	sections *lru.Cache[string, articlesv1.SectionsResponse]

	now func() time.Time
}

func NewAPI(repo campusfeed.Repository, syncer *sync.Syncer) *API {
	cache, _ := lru.New[string, articlesv1.SectionsResponse](16)

	return &API{
		repo:     repo,
		syncer:   syncer,
		sections: cache,
		now:      time.Now,
	}
}

// Attach registers every route.
func (a *API) Attach(r *mux.Router) {
	r.Handle("/v1/articles/{source}", HandlerFuncE(a.handleListArticles)).Methods(http.MethodGet)
	r.Handle("/v1/sections/{source}", HandlerFuncE(a.handleSections)).Methods(http.MethodGet)
	r.Handle("/v1/digest", HandlerFuncE(a.handleDigest)).Methods(http.MethodGet)
	r.Handle("/v1/sync", HandlerFuncE(a.handleSyncAll)).Methods(http.MethodPost)
	r.Handle("/v1/sync/{source}", HandlerFuncE(a.handleSyncOne)).Methods(http.MethodPost)
}

// Purge drops the section cache, typically after a sync run lands new data.
func (a *API) Purge() {
	a.sections.Purge()
}

func sourceVar(r *http.Request) (campusfeed.Source, error) {
	src, err := campusfeed.ParseSource(mux.Vars(r)["source"])
	if err != nil {
		return "", cferrs.E(http.StatusBadRequest, err)
	}
	return src, nil
}

func (a *API) handleListArticles(w http.ResponseWriter, r *http.Request) error {
	src, err := sourceVar(r)
	if err != nil {
		return err
	}

	articles, err := a.repo.ArticlesBySource(r.Context(), src)
	if err != nil {
		return err
	}

	resp := articlesv1.ListArticlesResponse{Articles: make([]articlesv1.Article, 0, len(articles))}
	for _, article := range articles {
		resp.Articles = append(resp.Articles, wireArticle(article))
	}

	return WriteJSON(w, http.StatusOK, resp)
}

func (a *API) handleSections(w http.ResponseWriter, r *http.Request) error {
	src, err := sourceVar(r)
	if err != nil {
		return err
	}

	now := a.now()
	cacheKey := string(src) + now.Format("2006-01-02T15")
	if resp, ok := a.sections.Get(cacheKey); ok {
		return WriteJSON(w, http.StatusOK, resp)
	}

	articles, err := a.sourceArticles(r, src, now)
	if err != nil {
		return err
	}

	g, err := grouping.Group(articles, src, now)
	if err != nil {
		return err
	}

	resp := articlesv1.SectionsResponse{Rows: sectionRows(g)}
	a.sections.Add(cacheKey, resp)

	return WriteJSON(w, http.StatusOK, resp)
}

// Forward-looking sources read ascending from today; the rest read the full
// history newest first.
func (a *API) sourceArticles(r *http.Request, src campusfeed.Source, now time.Time) ([]campusfeed.Article, error) {
	switch src {
	case campusfeed.SourceSchedules, campusfeed.SourceLunch, campusfeed.SourceEvents:
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return a.repo.ArticlesOnOrAfter(r.Context(), src, startOfDay)
	default:
		return a.repo.ArticlesBySource(r.Context(), src)
	}
}

func (a *API) handleDigest(w http.ResponseWriter, r *http.Request) error {
	d, err := digest.Build(r.Context(), a.repo, a.now())
	if err != nil {
		return err
	}

	resp := articlesv1.DigestResponse{
		ScheduleToday:    wireArticlePtr(d.ScheduleToday),
		LunchToday:       wireArticlePtr(d.LunchToday),
		Announcement:     wireArticlePtr(d.Announcement),
		ScheduleTomorrow: wireArticlePtr(d.ScheduleTomorrow),
		LunchTomorrow:    wireArticlePtr(d.LunchTomorrow),
	}

	return WriteJSON(w, http.StatusOK, resp)
}

func (a *API) handleSyncAll(w http.ResponseWriter, r *http.Request) error {
	res := a.syncer.SyncAll(r.Context())
	a.Purge()

	return WriteJSON(w, http.StatusOK, articlesv1.SyncResponse(res))
}

func (a *API) handleSyncOne(w http.ResponseWriter, r *http.Request) error {
	src, err := sourceVar(r)
	if err != nil {
		return err
	}

	res, err := a.syncer.SyncOne(r.Context(), src)
	if err != nil {
		return err
	}
	a.Purge()

	return WriteJSON(w, http.StatusOK, articlesv1.SyncResponse(res))
}

func sectionRows(g grouping.Grouping) []articlesv1.SectionRow {
	// An empty source still renders one placeholder row.
	if len(g.Articles) == 0 {
		return []articlesv1.SectionRow{{Header: g.Headers[0]}}
	}

	rows := make([]articlesv1.SectionRow, 0, len(g.Articles))
	for i, article := range g.Articles {
		wire := wireArticle(article)
		rows = append(rows, articlesv1.SectionRow{
			Header:  g.Headers[i],
			Article: &wire,
		})
	}

	return rows
}

func wireArticle(a campusfeed.Article) articlesv1.Article {
	return articlesv1.Article{
		Key:      a.Key,
		Title:    a.Title,
		URL:      a.URL,
		Date:     a.Date,
		Details:  a.Details,
		ImageURL: a.ImageURL,
		Source:   string(a.Source),
	}
}

func wireArticlePtr(a *campusfeed.Article) *articlesv1.Article {
	if a == nil {
		return nil
	}
	wire := wireArticle(*a)
	return &wire
}
