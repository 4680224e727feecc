package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/folio/internal/config"
	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	username := flag.String("username", "admin", "登录用户名")
	email := flag.String("email", "", "邮箱，默认 <username>@localhost")
	password := flag.String("password", "", "登录密码")
	perms := flag.String("permissions", "all", "逗号分隔的权限列表")
	flag.Parse()

	if strings.TrimSpace(*password) == "" {
		log.Fatal("密码不能为空: -password")
	}
	if strings.TrimSpace(*email) == "" {
		*email = strings.TrimSpace(*username) + "@localhost"
	}

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver:       cfg.DatabaseDriver,
		Path:         cfg.DatabasePath,
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
	}); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	admin, err := service.NewAdminService(db.DB).Create(context.Background(), service.AdminInput{
		Username:    *username,
		Email:       *email,
		Password:    *password,
		Permissions: strings.Split(*perms, ","),
	})
	if err != nil {
		log.Fatal("创建管理员失败:", service.UserMessage(err))
	}

	fmt.Println("管理员创建成功")
	fmt.Println("用户名:", admin.Username)
	fmt.Println("权限:", strings.Join(admin.Permissions, ", "))
}
