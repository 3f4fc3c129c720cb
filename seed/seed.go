// Package seed loads the showcase content shipped with a fresh install.
// Each loader replaces the whole collection.
package seed

import (
	"context"
	"errors"
	"fmt"

	"stem-inspires/models"
	"stem-inspires/repository"
)

// Champions is the initial list of season winners
var Champions = []models.Champion{
	{
		Title:         "G.S.O.B | 2025",
		Season:        "Submerged – 2025",
		Year:          2025,
		Description:   "GSOB Indatwa n’Inkesha is the oldest and one of the most prestigious secondary schools in Rwanda, located in Huye District. It is well known for its strong academic performance and national significance.",
		RoadToVictory: "Started at district level, promoted to province as no. 5, and finally ended up winning the national competition with an outstanding robot design.",
		Image:         "/championsImage/gsob.JPG",
		Alt:           "gsob 2025",
		ShowHeader:    true,
	},
	{
		Title:         "Christ Roi | 2024",
		Season:        "Masterpiece – 2024",
		Year:          2024,
		Description:   "Collège du Christ-Roi de Nyanza is a Catholic school and government-aided. It is located in Butare Diocese, in Southern Province, Nyanza District, Kristu-Umwami Parish. It was started by the Butare Diocese in 1956.",
		RoadToVictory: "After securing second place at the district level, they advanced to province as underdogs and later shocked everyone by lifting the national championship trophy.",
		Image:         "/championsImage/crlx-img.jpg",
		Alt:           "Champion Woman in STEM",
		ShowHeader:    true,
	},
	{
		Title:         "Maranyundo | 2023",
		Season:        "Energize – 2023",
		Year:          2023,
		Description:   "Maranyundo Girls School is a leading Rwandan boarding school offering science-focused education rooted in respect, responsibility, and leadership. It serves over 400 girls, many from underserved communities, with half on scholarships.",
		RoadToVictory: "They rose from being ranked fourth at district level, promoted to province as no. 2, and ended up dominating nationals with teamwork and innovation.",
		Image:         "/championsImage/maranyundo.jpg",
		Alt:           "Champion Woman in STEM",
		ShowHeader:    true,
	},
}

// Schools is the initial list of FTC schools
var Schools = []models.School{
	{Name: "College Saint Andrew", Img: "/ftc/saint-andre.jpg", Location: "Kigali", Website: "https://collegesaintandre.ac.rw"},
	{Name: "Christ Roi Nyanza", Img: "/ftc/christ-rio2.jpg", Location: "Rwanda", Website: "https://collegeduchristroi.ac.rw"},
	{Name: "Gashora Girls Academy", Img: "/ftc/gashora.webp", Location: "Rwanda", Website: "https://www.ggast.org/"},
	{Name: "Maranyundo Girls Schools", Img: "/ftc/maranyundo-2.jpg", Location: "Rwanda", Website: "http://maranyundogirlsschool.org"},
}

// FLLEntries is the initial FLL program list
var FLLEntries = []models.FLL{
	{
		Title:       "FIRST LEGO League",
		Description: "FIRST LEGO League introduces STEM to children ages 9–16 through hands-on learning. Participants gain real-world problem-solving experiences.",
		Logo:        "/getInvolved/fll-logo.jpeg",
		MapURL:      "https://www.google.com/maps/d/embed?mid=1YEB-ekeeOGA44BvLrk5FFcMhKfc531U&ehbc=2E312F",
	},
}

// Banner is the initial banner; its image is taken from the first champion
var Banner = models.Banner{
	Title:           "Our Commitment",
	Description:     "STEM Inspires is a company committed to empowering teams to achieve excellence in STEM. With our roots in hands-on STEM education and competitions, we understand the importance of creating an inclusive and motivating environment for teams to learn, innovate, and excel. That’s why we work with schools and student groups to provide mentorship, resources, and guidance, helping teams develop their skills and reach championship-level performance.",
	PrimaryColor:    models.DefaultPrimaryColor,
	SecondaryColor:  "rgb(247, 244, 46)",
	BackgroundColor: "rgb(242, 30, 167)",
}

type collection[T any] interface {
	DeleteAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, v *T) error
}

func replace[T any](ctx context.Context, c collection[T], items []T, what string) (int, error) {
	if _, err := c.DeleteAll(ctx); err != nil {
		return 0, err
	}
	for i := range items {
		item := items[i]
		if err := c.Create(ctx, &item); err != nil {
			return i, fmt.Errorf("seed %s: %w", what, err)
		}
	}
	return len(items), nil
}

// LoadChampions replaces all champions with Champions
func LoadChampions(ctx context.Context, repo *repository.ChampionRepo) (int, error) {
	return replace[models.Champion](ctx, repo, Champions, "champions")
}

// LoadSchools replaces all schools with Schools
func LoadSchools(ctx context.Context, repo *repository.SchoolRepo) (int, error) {
	return replace[models.School](ctx, repo, Schools, "schools")
}

// LoadFLL replaces all FLL entries with FLLEntries
func LoadFLL(ctx context.Context, repo *repository.FLLRepo) (int, error) {
	return replace[models.FLL](ctx, repo, FLLEntries, "fll")
}

// LoadBanner overwrites the banner with Banner, showing the first
// champion's image when one exists
func LoadBanner(ctx context.Context, banners *repository.BannerRepo, champions *repository.ChampionRepo) error {
	b := Banner
	first, err := champions.First(ctx)
	switch {
	case err == nil:
		b.Image = first.Image
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("seed banner: %w", err)
	}
	if err := banners.Replace(ctx, &b); err != nil {
		return fmt.Errorf("seed banner: %w", err)
	}
	return nil
}
