// cmd/seed/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"kumbara-api/internal/config"
	"kumbara-api/internal/util"
	"kumbara-api/pkg/db"
)

func main() {
	util.InitLogger()
	logger := util.GetLogger()

	cfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Error("Failed to load database configuration", "error", err)
		os.Exit(1)
	}

	conn, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := seed(conn, logger); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Seeding completed.")
}

func seed(conn *sqlx.DB, logger *slog.Logger) error {
	if err := seedDemoUser(conn); err != nil {
		return err
	}
	logger.Info("Demo user seeded.", "email", "demo@isb.com")

	if err := seedNGOs(conn); err != nil {
		return err
	}
	if err := seedReels(conn); err != nil {
		return err
	}
	if err := seedTasks(conn); err != nil {
		return err
	}
	return seedRewards(conn)
}

func seedDemoUser(conn *sqlx.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = conn.Exec(
		`INSERT INTO users (email, password_hash, full_name, main_balance)
         VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		"demo@isb.com", string(hash), "Demo Kullanıcı", 5000)
	return err
}

func seedNGOs(conn *sqlx.DB) error {
	ngos := []struct {
		name, description string
	}{
		{"TEMA", "Türkiye Erozyonla Mücadele, Ağaçlandırma ve Doğal Varlıkları Koruma Vakfı"},
		{"LÖSEV", "Lösemili Çocuklar Sağlık ve Eğitim Vakfı"},
		{"AKUT", "Arama Kurtarma Derneği"},
	}
	for _, n := range ngos {
		_, err := conn.Exec(
			`INSERT INTO ngos (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			n.name, n.description)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedReels(conn *sqlx.DB) error {
	empty, err := tableIsEmpty(conn, "reels")
	if err != nil || !empty {
		return err
	}
	reels := []struct {
		title, description, videoURL, category string
		duration, points                       int
	}{
		{"Bütçe Nedir?", "Bütçe yapmanın temelleri", "https://cdn.example.com/reels/budget-basics.mp4", "budget", 120, 10},
		{"Birikim İpuçları", "Küçük adımlarla birikim yapmak", "https://cdn.example.com/reels/saving-tips.mp4", "savings", 90, 10},
		{"Yatırıma Giriş", "Yatırım araçlarına ilk bakış", "https://cdn.example.com/reels/investing-intro.mp4", "investment", 180, 15},
	}
	for _, r := range reels {
		_, err := conn.Exec(
			`INSERT INTO reels (title, description, video_url, duration_seconds, points_reward, category)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			r.title, r.description, r.videoURL, r.duration, r.points, r.category)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTasks(conn *sqlx.DB) error {
	empty, err := tableIsEmpty(conn, "tasks")
	if err != nil || !empty {
		return err
	}
	tasks := []struct {
		title, description string
		points             int
	}{
		{"İlk Hedefini Oluştur", "Bir birikim hedefi oluştur", 50},
		{"İlk Harcamanı Kaydet", "Bir harcama işlemi ekle", 30},
		{"Yuvarlama Kuralı Kur", "Harcamalarını yuvarlayıp biriktir", 40},
	}
	for _, t := range tasks {
		_, err := conn.Exec(
			`INSERT INTO tasks (title, description, points_reward, type) VALUES ($1, $2, $3, 'one_time')`,
			t.title, t.description, t.points)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedRewards(conn *sqlx.DB) error {
	empty, err := tableIsEmpty(conn, "rewards")
	if err != nil || !empty {
		return err
	}
	rewards := []struct {
		name, description, rewardType string
		cost                          int
	}{
		{"%5 Cashback", "Bir sonraki harcamanda %5 iade", "cashback", 200},
		{"Sinema Bileti", "Anlaşmalı sinemalarda tek kişilik bilet", "cinema", 150},
		{"Konser İndirimi", "Seçili konserlerde indirim kodu", "concert", 300},
	}
	for _, r := range rewards {
		_, err := conn.Exec(
			`INSERT INTO rewards (name, description, points_cost, type) VALUES ($1, $2, $3, $4)`,
			r.name, r.description, r.cost, r.rewardType)
		if err != nil {
			return err
		}
	}
	return nil
}

func tableIsEmpty(conn *sqlx.DB, table string) (bool, error) {
	var count int
	if err := conn.Get(&count, `SELECT COUNT(*) FROM `+table); err != nil {
		return false, err
	}
	return count == 0, nil
}
