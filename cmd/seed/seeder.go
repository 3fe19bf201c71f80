package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/localnerve/shopdb/data"
	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Counts sets how many rows of each kind are generated.
type Counts struct {
	Admins       int
	Experts      int
	Users        int
	Brands       int
	Categories   int
	Products     int
	Events       int
	Participants int
	Messages     int
	Visits       int
	Password     string
}

// Report counts what a run created.
type Report struct {
	Roles        int
	Users        int
	Brands       int
	Categories   int
	Products     int
	Events       int
	Participants int
	Messages     int
	Visits       int
}

// Seeder generates sample data through the store interfaces, so it works
// against either backend. Every generated value is a function of the seed;
// dates are offsets from base.
type Seeder struct {
	st     store.Store
	counts Counts
	seed   int64
	fake   *gofakeit.Faker
	base   time.Time
}

func NewSeeder(st store.Store, counts Counts, seed int64) *Seeder {
	return &Seeder{
		st:     st,
		counts: counts,
		seed:   seed,
		fake:   gofakeit.New(uint64(seed)),
		base:   time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// pick returns a random element of ids.
func (s *Seeder) pick(ids []int64) int64 {
	return ids[s.fake.Number(0, len(ids)-1)]
}

// Run creates the reference roles and every configured sample row.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	names, err := data.RoleNames()
	if err != nil {
		return nil, err
	}
	if report.Roles, err = store.EnsureRoles(ctx, s.st, names); err != nil {
		return nil, errors.Wrap(err, "seeding roles")
	}

	hash, err := services.HashPassword(s.counts.Password)
	if err != nil {
		return nil, err
	}

	var users, experts []int64
	for _, group := range []struct {
		role  string
		count int
		ids   *[]int64
	}{
		{models.RoleAdmin, s.counts.Admins, nil},
		{models.RoleExpert, s.counts.Experts, &experts},
		{models.RoleUser, s.counts.Users, &users},
	} {
		role, err := store.FindRole(ctx, s.st, group.role)
		if err != nil {
			return nil, err
		}
		for i := 0; i < group.count; i++ {
			u := &models.User{
				RoleID:       role.RoleID,
				FirstName:    s.fake.FirstName(),
				LastName:     s.fake.LastName(),
				Email:        fmt.Sprintf("%s%d.s%d@shopdb.test", strings.ToLower(group.role), i+1, s.seed),
				PhoneNumber:  s.fake.PhoneFormatted(),
				PasswordHash: hash,
			}
			if err := s.st.Users().Create(ctx, u); err != nil {
				return nil, errors.Wrapf(err, "seeding %s account", group.role)
			}
			if group.ids != nil {
				*group.ids = append(*group.ids, u.UserID)
			}
			report.Users++
		}
	}

	var brandIDs, categoryIDs []int64
	for i := 0; i < s.counts.Brands; i++ {
		b := &models.Brand{Name: s.fake.Company(), Country: s.fake.CountryAbr()}
		if err := s.st.Brands().Create(ctx, b); err != nil {
			return nil, errors.Wrap(err, "seeding brands")
		}
		brandIDs = append(brandIDs, b.BrandID)
		report.Brands++
	}
	for i := 0; i < s.counts.Categories; i++ {
		c := &models.Category{Name: s.fake.ProductCategory()}
		if err := s.st.Categories().Create(ctx, c); err != nil {
			return nil, errors.Wrap(err, "seeding categories")
		}
		categoryIDs = append(categoryIDs, c.CategoryID)
		report.Categories++
	}

	if len(brandIDs) > 0 && len(categoryIDs) > 0 {
		for i := 0; i < s.counts.Products; i++ {
			p := &models.Product{
				BrandID:           s.pick(brandIDs),
				CategoryID:        s.pick(categoryIDs),
				Name:              s.fake.ProductName(),
				Description:       s.fake.ProductDescription(),
				Price:             models.Money{Decimal: decimal.NewFromFloat(s.fake.Price(1, 999)).Round(models.MoneyScale)},
				QuantityAvailable: int64(s.fake.Number(0, 99)),
			}
			if err := s.st.Products().Create(ctx, p); err != nil {
				return nil, errors.Wrap(err, "seeding products")
			}
			report.Products++
		}
	}

	var eventIDs []int64
	for i := 0; i < s.counts.Events; i++ {
		e := &models.Event{
			Name:        s.fake.Hobby() + " " + s.fake.RandomString([]string{"Workshop", "Meetup", "Clinic", "Demo"}),
			Description: s.fake.Phrase(),
			Date:        models.EventDate(s.base.AddDate(0, 0, s.fake.Number(7, 96))),
		}
		if err := s.st.Events().Create(ctx, e); err != nil {
			return nil, errors.Wrap(err, "seeding events")
		}
		eventIDs = append(eventIDs, e.EventID)
		report.Events++
	}

	people := append(append([]int64{}, users...), experts...)
	if len(eventIDs) > 0 && len(people) > 0 {
		for i := 0; i < s.counts.Participants; i++ {
			eventID := s.pick(eventIDs)
			userID := s.pick(people)
			if _, _, err := s.st.Events().Join(ctx, eventID, userID); err != nil {
				return nil, errors.Wrap(err, "seeding participants")
			}
			report.Participants++
		}
	}

	if len(people) > 1 {
		for i := 0; i < s.counts.Messages; i++ {
			sender := s.pick(people)
			recipient := s.pick(people)
			for recipient == sender {
				recipient = s.pick(people)
			}
			m := &models.Message{
				SenderID:    sender,
				RecipientID: recipient,
				Date:        s.base.Add(-time.Duration(s.fake.Number(1, 72*60)) * time.Minute),
				Content:     s.fake.Question(),
			}
			if err := s.st.Messages().Create(ctx, m); err != nil {
				return nil, errors.Wrap(err, "seeding messages")
			}
			report.Messages++
		}
	}

	if len(users) > 0 && len(experts) > 0 {
		for i := 0; i < s.counts.Visits; i++ {
			v := &models.Visit{
				VisitorID: s.pick(users),
				ExpertID:  s.pick(experts),
				Date:      s.base.AddDate(0, 0, s.fake.Number(1, 30)).Add(time.Duration(s.fake.Number(9, 17)) * time.Hour),
				Note:      s.fake.Phrase(),
			}
			if err := s.st.Visits().Create(ctx, v); err != nil {
				return nil, errors.Wrap(err, "seeding visits")
			}
			report.Visits++
		}
	}

	return report, nil
}
