package main

import (
	"fmt"

	"qrmenu/internal/database"
	"qrmenu/internal/models"
	"qrmenu/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// seedData 初始化演示数据
// 幂等：按slug/名称判断是否已存在，重复启动不会产生重复记录
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	tenant, err := createDemoTenant(db)
	if err != nil {
		return fmt.Errorf("创建演示租户失败: %v", err)
	}

	if err := createDemoOwner(db, tenant); err != nil {
		return fmt.Errorf("创建演示管理员失败: %v", err)
	}

	if err := createDemoMenu(db, tenant); err != nil {
		return fmt.Errorf("创建演示菜单失败: %v", err)
	}

	if err := createDemoMedia(db, tenant); err != nil {
		return fmt.Errorf("创建演示媒体失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDemoTenant 创建演示租户
func createDemoTenant(db *gorm.DB) (*models.Tenant, error) {
	var tenant models.Tenant
	err := db.Where("slug = ?", "demo-restaurant").First(&tenant).Error
	if err == nil {
		logger.GetLogger().Info("演示租户已存在，跳过创建")
		return &tenant, nil
	}

	tenant = models.Tenant{
		Name:   "Demo Restaurant",
		Slug:   "demo-restaurant",
		Plan:   models.TenantPlanPremium,
		Status: models.TenantStatusActive,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return nil, err
	}

	logger.GetLogger().Info("演示租户创建成功")
	return &tenant, nil
}

// createDemoOwner 创建演示owner账号
func createDemoOwner(db *gorm.DB, tenant *models.Tenant) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@demo-restaurant.com").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("演示管理员已存在，跳过创建")
		return nil
	}

	user := &models.User{
		TenantID:  tenant.ID,
		Email:     "admin@demo-restaurant.com",
		Username:  "admin",
		FirstName: "Demo",
		LastName:  "Admin",
		Role:      models.UserRoleOwner,
		Status:    models.UserStatusActive,
	}
	if err := user.SetPassword("Admin@123"); err != nil {
		return fmt.Errorf("设置密码失败: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	logger.GetLogger().Infof("演示管理员创建成功 - 邮箱: admin@demo-restaurant.com, 密码: Admin@123")
	return nil
}

// demoItem 演示菜品定义
type demoItem struct {
	name        string
	description string
	category    string
	weightG     int
	kcal        int
	amountMinor int64
	tags        string
	allergens   string
}

// createDemoMenu 创建演示门店、菜单、分类和菜品
func createDemoMenu(db *gorm.DB, tenant *models.Tenant) error {
	capacity := 50
	location := &models.Location{
		TenantID:    tenant.ID,
		Name:        "Основной зал",
		Description: "Главный зал ресторана",
		Address:     "ул. Демо, 1",
		Phone:       "+7 (XXX) XXX-XX-XX",
		Email:       "info@demo-restaurant.com",
		Capacity:    &capacity,
		IsActive:    true,
	}
	var existing models.Location
	if err := db.Where("tenant_id = ? AND name = ?", tenant.ID, location.Name).
		First(&existing).Error; err == nil {
		location = &existing
	} else if err := db.Create(location).Error; err != nil {
		return err
	}

	menu := &models.Menu{
		TenantID:   tenant.ID,
		LocationID: location.ID,
		Name:       "Основное меню",
		Active:     true,
	}
	var existingMenu models.Menu
	if err := db.Where("tenant_id = ? AND location_id = ? AND name = ?",
		tenant.ID, location.ID, menu.Name).First(&existingMenu).Error; err == nil {
		menu = &existingMenu
	} else if err := db.Create(menu).Error; err != nil {
		return err
	}

	categoryNames := []struct {
		name string
		sort uint
	}{
		{"Закуски", 1},
		{"Основные блюда", 2},
		{"Десерты", 3},
		{"Напитки", 4},
	}

	categories := make(map[string]*models.Category, len(categoryNames))
	for _, c := range categoryNames {
		category := &models.Category{
			TenantID: tenant.ID,
			MenuID:   menu.ID,
			Name:     c.name,
			Sort:     c.sort,
		}
		var existingCategory models.Category
		if err := db.Where("tenant_id = ? AND menu_id = ? AND name = ?",
			tenant.ID, menu.ID, c.name).First(&existingCategory).Error; err == nil {
			categories[c.name] = &existingCategory
			continue
		}
		if err := db.Create(category).Error; err != nil {
			return err
		}
		categories[c.name] = category
	}

	items := []demoItem{
		{
			name:        "Брускетта с томатами",
			description: "Свежие томаты на поджаренном хлебе с базиликом",
			category:    "Закуски",
			weightG:     150,
			kcal:        280,
			amountMinor: 45000, // 450 рублей в копейках
			tags:        `["вегетарианское","свежее"]`,
			allergens:   `["глютен"]`,
		},
		{
			name:        "Стейк из говядины",
			description: "Сочный стейк средней прожарки с картофелем",
			category:    "Основные блюда",
			weightG:     300,
			kcal:        650,
			amountMinor: 120000,
			tags:        `["мясо","сытное"]`,
			allergens:   `[]`,
		},
		{
			name:        "Тирамису",
			description: "Классический итальянский десерт с кофе и маскарпоне",
			category:    "Десерты",
			weightG:     120,
			kcal:        420,
			amountMinor: 35000,
			tags:        `["десерт","кофе"]`,
			allergens:   `["глютен","молочные продукты","яйца"]`,
		},
		{
			name:        "Свежевыжатый апельсиновый сок",
			description: "Натуральный сок из свежих апельсинов",
			category:    "Напитки",
			weightG:     250,
			kcal:        110,
			amountMinor: 18000,
			tags:        `["натуральный","витамины"]`,
			allergens:   `[]`,
		},
	}

	for _, d := range items {
		category := categories[d.category]

		var count int64
		db.Model(&models.Item{}).
			Where("tenant_id = ? AND category_id = ? AND name = ?", tenant.ID, category.ID, d.name).
			Count(&count)
		if count > 0 {
			continue
		}

		weightG := d.weightG
		kcal := d.kcal
		item := &models.Item{
			TenantID:    tenant.ID,
			CategoryID:  category.ID,
			Name:        d.name,
			Description: d.description,
			WeightG:     &weightG,
			Kcal:        &kcal,
			Tags:        datatypes.JSON(d.tags),
			Allergens:   datatypes.JSON(d.allergens),
		}
		if err := db.Create(item).Error; err != nil {
			return err
		}

		price := &models.Price{
			ItemID:      item.ID,
			AmountMinor: d.amountMinor,
			Currency:    "RUB",
		}
		if err := db.Create(price).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("演示菜单数据创建完成")
	return nil
}

// createDemoMedia 为布鲁斯凯塔创建演示媒体并绑定
// 绑定按(菜品,用途)先删后建，重复执行不会累积记录
func createDemoMedia(db *gorm.DB, tenant *models.Tenant) error {
	var item models.Item
	err := db.Where("tenant_id = ? AND name = ?", tenant.ID, "Брускетта с томатами").
		First(&item).Error
	if err != nil {
		return err
	}

	duration := 18
	assets := []struct {
		asset *models.MediaAsset
		kind  string
		sort  uint
	}{
		{
			asset: &models.MediaAsset{
				TenantID:     tenant.ID,
				Type:         models.MediaTypeImage,
				OriginalURL:  "https://cdn.demo-restaurant.com/media/bruschetta-preview.jpg",
				ThumbnailURL: "https://cdn.demo-restaurant.com/media/bruschetta-thumb.jpg",
			},
			kind: models.ItemMediaKindPreview,
			sort: 0,
		},
		{
			asset: &models.MediaAsset{
				TenantID:        tenant.ID,
				Type:            models.MediaTypeVideo,
				OriginalURL:     "https://cdn.demo-restaurant.com/media/bruschetta.mp4",
				HLSURL:          "https://cdn.demo-restaurant.com/media/bruschetta/index.m3u8",
				PosterURL:       "https://cdn.demo-restaurant.com/media/bruschetta-poster.jpg",
				DurationSeconds: &duration,
			},
			kind: models.ItemMediaKindFull,
			sort: 1,
		},
	}

	for _, a := range assets {
		var existing models.MediaAsset
		err := db.Where("tenant_id = ? AND original_url = ?", tenant.ID, a.asset.OriginalURL).
			First(&existing).Error
		if err == nil {
			a.asset = &existing
		} else if err := db.Create(a.asset).Error; err != nil {
			return err
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("item_id = ? AND kind = ?", item.ID, a.kind).
				Delete(&models.ItemMedia{}).Error; err != nil {
				return err
			}
			return tx.Create(&models.ItemMedia{
				ItemID:  item.ID,
				MediaID: a.asset.ID,
				Kind:    a.kind,
				Sort:    a.sort,
			}).Error
		})
		if err != nil {
			return err
		}
	}

	logger.GetLogger().Info("演示媒体数据创建完成")
	return nil
}
