package controllers_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/models"
	"stem-inspires/payments"
	"stem-inspires/repository"
)

type championStore struct {
	mu    sync.Mutex
	items []models.Champion
}

func (s *championStore) List(context.Context) ([]models.Champion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Champion{}, s.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (s *championStore) Get(_ context.Context, id primitive.ObjectID) (*models.Champion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			c := s.items[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *championStore) First(context.Context) (*models.Champion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil, repository.ErrNotFound
	}
	c := s.items[0]
	return &c, nil
}

func (s *championStore) Create(_ context.Context, c *models.Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	s.items = append(s.items, *c)
	return nil
}

func (s *championStore) Update(_ context.Context, id primitive.ObjectID, p models.ChampionPatch) (*models.Champion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		c := &s.items[i]
		if c.ID != id {
			continue
		}
		setString(&c.Title, p.Title)
		setString(&c.Season, p.Season)
		setString(&c.Description, p.Description)
		setString(&c.RoadToVictory, p.RoadToVictory)
		setString(&c.Image, p.Image)
		setString(&c.Alt, p.Alt)
		if p.Year != nil {
			c.Year = *p.Year
		}
		if p.ShowHeader != nil {
			c.ShowHeader = *p.ShowHeader
		}
		out := *c
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (s *championStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Champion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			c := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type schoolStore struct {
	mu    sync.Mutex
	items []models.School
}

func (s *schoolStore) List(context.Context) ([]models.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.School{}, s.items...), nil
}

func (s *schoolStore) Get(_ context.Context, id primitive.ObjectID) (*models.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			sc := s.items[i]
			return &sc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *schoolStore) Create(_ context.Context, sc *models.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc.ID = primitive.NewObjectID()
	s.items = append(s.items, *sc)
	return nil
}

func (s *schoolStore) Update(_ context.Context, id primitive.ObjectID, p models.SchoolPatch) (*models.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		sc := &s.items[i]
		if sc.ID != id {
			continue
		}
		setString(&sc.Name, p.Name)
		setString(&sc.Img, p.Img)
		setString(&sc.Location, p.Location)
		setString(&sc.Website, p.Website)
		out := *sc
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (s *schoolStore) Delete(_ context.Context, id primitive.ObjectID) (*models.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			sc := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return &sc, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fllStore struct {
	mu    sync.Mutex
	items []models.FLL
}

func (s *fllStore) List(context.Context) ([]models.FLL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FLL, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

func (s *fllStore) Get(_ context.Context, id primitive.ObjectID) (*models.FLL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			f := s.items[i]
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fllStore) Create(_ context.Context, f *models.FLL) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = primitive.NewObjectID()
	s.items = append(s.items, *f)
	return nil
}

func (s *fllStore) Update(_ context.Context, id primitive.ObjectID, p models.FLLPatch) (*models.FLL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		f := &s.items[i]
		if f.ID != id {
			continue
		}
		setString(&f.Title, p.Title)
		setString(&f.Description, p.Description)
		setString(&f.Logo, p.Logo)
		setString(&f.MapURL, p.MapURL)
		out := *f
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fllStore) Delete(_ context.Context, id primitive.ObjectID) (*models.FLL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			f := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

// bannerStore follows the repository contract: the match-or-insert step is
// atomic, as the unique key index makes it in MongoDB.
type bannerStore struct {
	mu      sync.Mutex
	banners []models.Banner
	inserts int
}

func (s *bannerStore) Get(context.Context) (*models.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.banners) == 0 {
		return nil, repository.ErrNotFound
	}
	b := s.banners[0]
	return &b, nil
}

func (s *bannerStore) Upsert(_ context.Context, u models.BannerUpdate, image *string) (*models.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.banners) == 0 {
		if u.Title == "" || u.Description == "" {
			return nil, repository.ErrNotFound
		}
		s.banners = append(s.banners, models.Banner{
			ID:              primitive.NewObjectID(),
			Key:             models.BannerKey,
			PrimaryColor:    models.DefaultPrimaryColor,
			SecondaryColor:  models.DefaultSecondaryColor,
			BackgroundColor: models.DefaultBackgroundColor,
		})
		s.inserts++
	}
	b := &s.banners[0]
	for _, f := range []struct {
		dst *string
		v   string
	}{
		{&b.Title, u.Title},
		{&b.Description, u.Description},
		{&b.PrimaryColor, u.PrimaryColor},
		{&b.SecondaryColor, u.SecondaryColor},
		{&b.BackgroundColor, u.BackgroundColor},
	} {
		if f.v != "" {
			*f.dst = f.v
		}
	}
	if image != nil {
		b.Image = *image
	}
	out := *b
	return &out, nil
}

type adminStore struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newAdminStore() *adminStore {
	return &adminStore{admins: map[primitive.ObjectID]*models.Admin{}}
}

func (s *adminStore) add(email, password string) *models.Admin {
	a := &models.Admin{ID: primitive.NewObjectID(), Email: email, Password: password}
	if err := a.BeforeSave(); err != nil {
		panic(err)
	}
	s.mu.Lock()
	s.admins[a.ID] = a
	s.mu.Unlock()
	return a
}

func (s *adminStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (s *adminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *adminStore) Save(_ context.Context, a *models.Admin) error {
	if err := a.BeforeSave(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[a.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	s.admins[a.ID] = &cp
	return nil
}

type donations struct {
	url      string
	err      error
	payments []models.Payment
	calls    []string
}

func (d *donations) start(kind string) (string, error) {
	d.calls = append(d.calls, kind)
	return d.url, d.err
}

func (d *donations) StripeOneTime(context.Context, payments.DonationRequest) (string, error) {
	return d.start("stripe")
}

func (d *donations) StripeMonthly(context.Context, payments.DonationRequest) (string, error) {
	return d.start("stripe-monthly")
}

func (d *donations) PayPalOneTime(context.Context, payments.DonationRequest) (string, error) {
	return d.start("paypal")
}

func (d *donations) List(context.Context) ([]models.Payment, error) {
	return d.payments, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
