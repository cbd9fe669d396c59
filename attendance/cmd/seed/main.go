package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/notify"
	"timekeeper.app/timekeeper/config"
)

func main() {
	adminEmail := flag.String("admin", "admin@example.com", "email of the admin user to create")
	officeName := flag.String("office", "Head Office", "name of the sample office")
	lat := flag.Float64("lat", -27.4698, "office latitude")
	lng := flag.Float64("lng", 153.0251, "office longitude")
	radius := flag.Float64("radius", 100, "allowed radius in meters")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Open(ctx, cfg, notify.LogNotifier{}, true)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()
	fmt.Printf("[INFO] schema migrated\n")

	existing, err := a.Users.FindByEmail(ctx, *adminEmail)
	if err != nil {
		log.Fatal(err)
	}
	if existing == nil {
		admin := &model.User{Email: *adminEmail, FirstName: "Admin", Role: model.RoleAdmin}
		if err := a.Store.SaveUser(ctx, admin); err != nil {
			log.Fatalf("failed to create admin %s: %v", *adminEmail, err)
		}
		fmt.Printf("[INFO] created admin %s (id %d)\n", admin.Email, admin.ID)
	} else {
		fmt.Printf("[INFO] admin %s already exists\n", existing.Email)
	}

	offices, err := a.Offices.ListOffices(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range offices {
		if o.Name == *officeName {
			fmt.Printf("[INFO] office %s already exists\n", o.Name)
			return
		}
	}

	office := &model.OfficeLocation{Name: *officeName, Latitude: *lat, Longitude: *lng, AllowedRadius: *radius, IsActive: true}
	if err := a.Offices.CreateOffice(ctx, office); err != nil {
		log.Fatalf("failed to create office: %v", err)
	}
	fmt.Printf("[INFO] created office %s (id %d)\n", office.Name, office.ID)
}
