package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"chillnest-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "chillnest_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func amenitiesJSON(items ...string) datatypes.JSON {
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

// SeedDatabase inserts demo users, hotels, rooms and vouchers on first boot.
// Every block is guarded by a Count so reboots are no-ops.
func SeedDatabase() {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash demo password: %v", err)
		} else {
			users := []models.User{
				{FullName: "Nguyen Van An", Email: "an@chillnest.local", Phone: "0901000001", Password: string(hash)},
				{FullName: "Tran Thi Binh", Email: "binh@chillnest.local", Phone: "0901000002", Password: string(hash)},
			}
			if err := DB.Create(&users).Error; err != nil {
				log.Printf("warning: failed to seed users: %v", err)
			} else {
				log.Println("Users seeded")
			}
		}
	}

	var hotelCount int64
	DB.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount == 0 {
		hotels := []models.Hotel{
			{
				Name:      "ChillNest Riverside",
				Address:   "12 Ton Duc Thang",
				City:      "Da Nang",
				Country:   "Vietnam",
				Latitude:  16.0544,
				Longitude: 108.2022,
				Amenities: amenitiesJSON("wifi", "pool", "breakfast"),
			},
			{
				Name:      "ChillNest Old Quarter",
				Address:   "5 Hang Bac",
				City:      "Hanoi",
				Country:   "Vietnam",
				Latitude:  21.0341,
				Longitude: 105.8516,
				Amenities: amenitiesJSON("wifi", "parking"),
			},
		}
		if err := DB.Create(&hotels).Error; err != nil {
			log.Printf("warning: failed to seed hotels: %v", err)
		} else {
			rooms := []models.Room{
				{HotelID: hotels[0].ID, Name: "Deluxe River View", Price: 500000, Status: true, Capacity: 2, BedType: "Queen", Size: 28},
				{HotelID: hotels[0].ID, Name: "Family Suite", Price: 900000, Status: true, Capacity: 4, BedType: "2 Queens", Size: 45},
				{HotelID: hotels[1].ID, Name: "Standard Double", Price: 350000, Status: true, Capacity: 2, BedType: "Double", Size: 22},
			}
			if err := DB.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed rooms: %v", err)
			} else {
				log.Println("Hotels and rooms seeded")
			}
		}
	}

	var voucherCount int64
	DB.Model(&models.Voucher{}).Count(&voucherCount)
	if voucherCount == 0 {
		minOrder := 1000000.0
		vouchers := []models.Voucher{
			{
				Code:          "WELCOME10",
				Description:   "10% off your first stay",
				DiscountType:  models.DiscountTypePercent,
				DiscountValue: 10,
				MinOrderValue: &minOrder,
				Quantity:      100,
				ExpiryDate:    time.Now().AddDate(1, 0, 0),
				IsActive:      true,
			},
			{
				Code:          "SUMMER50K",
				Description:   "50,000 VND off",
				DiscountType:  models.DiscountTypeFixed,
				DiscountValue: 50000,
				Quantity:      50,
				ExpiryDate:    time.Now().AddDate(0, 3, 0),
				IsActive:      true,
			},
		}
		if err := DB.Create(&vouchers).Error; err != nil {
			log.Printf("warning: failed to seed vouchers: %v", err)
		} else {
			log.Println("Vouchers seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Voucher{},
		&models.UserVoucher{},
		&models.Booking{},
		&models.Review{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
