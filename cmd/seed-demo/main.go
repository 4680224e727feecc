package main

import (
	"context"
	"fmt"
	"log"

	"github.com/folio/internal/config"
	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// 演示数据生成器
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver:       cfg.DatabaseDriver,
		Path:         cfg.DatabasePath,
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
	}); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	ctx := context.Background()
	if err := service.Bootstrap(ctx, db.DB); err != nil {
		log.Fatal("默认数据初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")
	summary, err := seedDemo(ctx, db.DB)
	if err != nil {
		log.Fatal("生成演示数据失败:", err)
	}
	for _, line := range summary {
		fmt.Println("✅", line)
	}
	fmt.Println("演示数据生成完成！")
}

// seedDemo 只填充空表，重复执行不会产生重复数据
func seedDemo(ctx context.Context, gdb *gorm.DB) ([]string, error) {
	var summary []string

	steps := []struct {
		name  string
		model any
		seed  func(context.Context, *gorm.DB) (int, error)
	}{
		{"个人资料", nil, seedPersonalInfo},
		{"教育经历", &db.Education{}, seedEducation},
		{"工作经历", &db.Experience{}, seedExperience},
		{"技能", &db.Skill{}, seedSkills},
		{"作品", &db.Project{}, seedProjects},
		{"文章", &db.BlogPost{}, seedPosts},
		{"服务", &db.Service{}, seedOfferings},
	}

	for _, step := range steps {
		if step.model != nil {
			var count int64
			if err := gdb.WithContext(ctx).Model(step.model).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("count %s: %w", step.name, err)
			}
			if count > 0 {
				summary = append(summary, fmt.Sprintf("%s已存在，跳过创建", step.name))
				continue
			}
		}
		created, err := step.seed(ctx, gdb)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", step.name, err)
		}
		summary = append(summary, fmt.Sprintf("%s: %d 条", step.name, created))
	}
	return summary, nil
}

func seedPersonalInfo(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewPersonalInfoService(gdb)
	if current, err := svc.Get(ctx); err == nil && current.FullName != "" {
		return 0, nil
	}
	_, err := svc.Update(ctx, service.PersonalInfoInput{
		FullName:           "Alex Chen",
		Title:              "Full-stack Engineer",
		Bio:                "I build web products end to end, from database schema to the last pixel.",
		Email:              "alex@example.com",
		Location:           "Remote",
		CurrentFocus:       "Go services and design systems",
		AvailabilityStatus: db.AvailabilityAvailable,
		GithubURL:          "https://github.com/example",
		LinkedinURL:        "https://www.linkedin.com/in/example",
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func seedEducation(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewEducationService(gdb)
	items := []service.EducationInput{
		{Institution: "State University", Degree: "BSc", FieldOfStudy: "Computer Science", StartDate: "2012-09", EndDate: "2016-06", Description: "Distributed systems and HCI."},
		{Institution: "Open Learning Institute", Degree: "Certificate", FieldOfStudy: "Product Design", StartDate: "2019-01", EndDate: "2019-08"},
	}
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedExperience(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewExperienceService(gdb)
	items := []service.ExperienceInput{
		{
			Company:          "Northwind Labs",
			Position:         "Senior Engineer",
			Location:         "Remote",
			StartDate:        "2021-03",
			Responsibilities: "Led the billing platform rewrite\nMentored four engineers\nCut p95 latency by 40%",
		},
		{
			Company:          "Contoso Digital",
			Position:         "Software Engineer",
			Location:         "Berlin",
			StartDate:        "2016-07",
			EndDate:          "2021-02",
			Responsibilities: "Built customer dashboards\nOwned the CI pipeline",
		},
	}
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedSkills(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewSkillService(gdb)
	items := []service.SkillInput{
		{Name: "Go", Category: db.SkillCategoryBackend, ProficiencyLevel: 90, IsFeatured: true},
		{Name: "PostgreSQL", Category: db.SkillCategoryBackend, ProficiencyLevel: 80},
		{Name: "React", Category: db.SkillCategoryFrontend, ProficiencyLevel: 85, IsFeatured: true},
		{Name: "Docker", Category: db.SkillCategoryDevOps, ProficiencyLevel: 75},
		{Name: "Figma", Category: db.SkillCategoryDesign, ProficiencyLevel: 60},
		{Name: "Git", Category: db.SkillCategoryTools, ProficiencyLevel: 90},
	}
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedProjects(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewProjectService(gdb)
	items := []service.ProjectInput{
		{
			Title:            "Ledger Sync",
			ShortDescription: "Real-time bookkeeping sync between banks and accounting tools.",
			LongDescription:  "## Overview\n\nA Go service that reconciles bank feeds every minute.",
			TechStack:        []string{"Go", "PostgreSQL", "React"},
			GithubURL:        "https://github.com/example/ledger-sync",
			Featured:         true,
			Category:         "SaaS",
			Collaborators:    []db.Collaborator{{Name: "Sam Lee", URL: "https://example.com/sam"}},
		},
		{
			Title:            "Trailhead",
			ShortDescription: "Offline-first hiking companion.",
			TechStack:        []string{"React Native", "SQLite"},
			LiveURL:          "https://trailhead.example.com",
			Category:         "Mobile",
		},
		{
			Title:            "Design Tokens CLI",
			ShortDescription: "Turns Figma variables into CSS and Swift constants.",
			TechStack:        []string{"Go"},
			Category:         "Tooling",
		},
	}
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedPosts(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewBlogPostService(gdb)
	items := []service.BlogPostInput{
		{
			Title:       "Shipping a Go service in a weekend",
			Excerpt:     "Notes from building a small API with Gin and GORM.",
			Content:     "## Start small\n\nPick boring tools and write the tests first.",
			Author:      "Alex Chen",
			Tags:        []string{"go", "backend"},
			ReadTime:    "5 min read",
			PublishedAt: "2024-05-12",
		},
		{
			Title:       "What design tokens taught me about naming",
			Excerpt:     "Naming is a product decision.",
			Content:     "Tokens are an API between design and engineering.",
			Author:      "Alex Chen",
			Tags:        []string{"design"},
			ReadTime:    "4 min read",
			PublishedAt: "2024-08-03",
		},
		{
			Title:   "Draft: notes on offline sync",
			Content: "Work in progress.",
			Author:  "Alex Chen",
		},
	}
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedOfferings(ctx context.Context, gdb *gorm.DB) (int, error) {
	svc := service.NewOfferingService(gdb)
	items := []service.OfferingInput{
		{
			ServiceType:   db.ServiceTypeWeb,
			Title:         "Web application",
			Description:   "From prototype to production.",
			Features:      []string{"Responsive UI", "REST API", "Deployment"},
			PriceText:     "From $4,000",
			IsRecommended: true,
			TechFocus:     []string{"Go", "React"},
		},
		{
			ServiceType: db.ServiceTypeConsulting,
			Title:       "Architecture review",
			Description: "A written review of your system with a prioritized plan.",
			Features:    []string{"Two workshops", "Written report"},
			PriceText:   "$900",
		},
	}
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}
