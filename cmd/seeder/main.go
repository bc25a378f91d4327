package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/sift"
	"github.com/poiesic/sift/core"
)

var demoProfiles = []*core.Profile{
	{Name: "Alice Moreau", Expertise: "hotel consultant", Business: "Moreau Hospitality Advisory", Hobbies: []string{"sailing", "wine tasting"}, FamilyStatus: "married, two children", Contacts: []string{"moreau-advisory.example", "+33123456789"}, Source: "demo"},
	{Name: "Bob Tanaka", Expertise: "software engineer", Business: "Tanaka Systems", Hobbies: []string{"chess", "bouldering"}, FamilyStatus: "single", Contacts: []string{"tanaka-systems.example"}, Source: "demo"},
	{Name: "Carol Okafor", Expertise: "chef and restaurateur", Business: "Okafor Kitchens", Hobbies: []string{"foraging", "pottery"}, FamilyStatus: "married", Contacts: []string{"okafor-kitchens.example"}, Source: "demo"},
	{Name: "David Lindqvist", Expertise: "tax attorney", Business: "Lindqvist & Partners", Hobbies: []string{"cross-country skiing"}, FamilyStatus: "divorced, one child", Contacts: []string{"lindqvist-partners.example", "david@example.com"}, Source: "demo"},
	{Name: "Elena Petrova", Expertise: "structural engineer", Business: "Petrova Consulting", Hobbies: []string{"violin", "marathon running"}, FamilyStatus: "married", Contacts: []string{"petrova-consulting.example"}, Source: "demo"},
	{Name: "Farid Haddad", Expertise: "boutique hotel operator", Business: "Haddad Hotels Group", Hobbies: []string{"calligraphy"}, FamilyStatus: "married, three children", Contacts: []string{"haddad-hotels.example"}, Source: "demo"},
	{Name: "Grace Kim", Expertise: "pediatric nurse", Business: "City Children's Clinic", Hobbies: []string{"gardening", "watercolor painting"}, FamilyStatus: "single", Contacts: []string{"+8225551234"}, Source: "demo"},
	{Name: "Hugo Ferreira", Expertise: "sommelier", Business: "Ferreira Wine Imports", Hobbies: []string{"cycling", "cooking"}, FamilyStatus: "married", Contacts: []string{"ferreira-wines.example"}, Source: "demo"},
	{Name: "Ingrid Bauer", Expertise: "logistics manager", Business: "Bauer Freight", Hobbies: []string{"hiking", "birdwatching"}, FamilyStatus: "widowed", Contacts: []string{"bauer-freight.example"}, Source: "demo"},
	{Name: "Jamal Wright", Expertise: "event photographer", Business: "Wright Studio", Hobbies: []string{"skateboarding", "vinyl collecting"}, FamilyStatus: "single", Contacts: []string{"wright-studio.example", "jamal@example.com"}, Source: "demo"},
}

var dbPath = flag.String("db", "./profiles_db", "database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := sift.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	indexed, failures := db.IndexAll(ctx, demoProfiles)
	slog.Info("seeding complete", "indexed", indexed, "failed", len(failures))
	for _, failure := range failures {
		slog.Error("seed failure", "err", failure)
	}
}
