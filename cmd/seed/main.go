package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log"
	"time"

	"hackreg/internal/config"
	"hackreg/internal/database"
	"hackreg/internal/models"
	"hackreg/internal/repository"
	"hackreg/internal/storage"
	"hackreg/pkg/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// seedTeam describes one demo team. The first member is the leader.
type seedTeam struct {
	OwnerID   string
	Name      string
	Track     models.Track
	UPI       string
	Status    models.PaymentStatus
	Members   []models.MemberInput
	CheckedIn int // number of members, leader first, already at the venue
}

func main() {
	log.Println("Starting seed...")

	// Load config
	cfg := config.Load()

	// Connect to MongoDB
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Connect to S3/MinIO
	s3Client := storage.NewS3Client(storage.S3Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	receipts := storage.NewReceipts(s3Client)

	ctx := context.Background()

	clearCollections(ctx, mongoDB.Database)

	if _, err := database.EnsureIndexes(ctx, mongoDB.Database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	teamRepo := repository.NewTeamRepository(mongoDB.Database)
	memberRepo := repository.NewMemberRepository(mongoDB.Database)
	receipt := placeholderReceipt()

	for _, st := range demoTeams() {
		seedOne(ctx, teamRepo, memberRepo, receipts, receipt, st)
	}

	printTokens(cfg)

	log.Println("Seed completed successfully!")
}

func clearCollections(ctx context.Context, db *mongo.Database) {
	for _, name := range []string{database.TeamsCollection, database.MembersCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s: %v", name, err)
		}
	}
}

func seedOne(ctx context.Context, teamRepo repository.TeamRepository, memberRepo repository.MemberRepository, receipts storage.ReceiptStore, receipt models.ReceiptFile, st seedTeam) {
	leader := st.Members[0]
	team := &models.Team{
		ID:               primitive.NewObjectID(),
		Name:             st.Name,
		Track:            st.Track,
		Size:             len(st.Members),
		PaymentReference: st.UPI,
		PaymentStatus:    st.Status,
		OwnerID:          st.OwnerID,
		OwnerEmail:       leader.Email,
	}
	if st.Status == models.PaymentVerified {
		now := time.Now()
		team.VerifiedAt = &now
	}

	// Receipt keys embed the team ID, so upload before the insert.
	key, err := receipts.Upload(ctx, team.ID.Hex(), receipt)
	if err != nil {
		log.Printf("Warning: Failed to upload receipt for %s: %v", st.Name, err)
	}
	team.PaymentReceiptPath = key

	if err := teamRepo.Create(ctx, team); err != nil {
		log.Fatalf("Failed to seed team %s: %v", st.Name, err)
	}

	members := models.BuildRoster(team.ID, st.Members)
	if err := memberRepo.InsertMany(ctx, members); err != nil {
		log.Fatalf("Failed to seed members of %s: %v", st.Name, err)
	}
	for i := 0; i < st.CheckedIn && i < len(members); i++ {
		if err := memberRepo.UpdateCheckIn(ctx, members[i].ID, true); err != nil {
			log.Printf("Warning: Failed to check in %s: %v", members[i].Email, err)
		}
	}

	log.Printf("Seeded team %s (%s, %d members)", st.Name, st.Status, len(members))
}

// placeholderReceipt renders a small PNG to stand in for a payment screenshot.
func placeholderReceipt() models.ReceiptFile {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("Failed to render placeholder receipt: %v", err)
	}

	return models.ReceiptFile{
		Filename:    "receipt.png",
		ContentType: "image/png",
		Size:        int64(buf.Len()),
		Data:        buf.Bytes(),
	}
}

// printTokens logs bearer tokens for the demo identities so the API can be
// exercised without the identity provider.
func printTokens(cfg *config.Config) {
	jwtManager := auth.NewJWTManager(cfg.AccessTokenSecret, cfg.AccessTokenExpiry)

	identities := []models.Identity{{ID: "seed-admin", Email: cfg.AdminEmail}}
	for _, st := range demoTeams() {
		identities = append(identities, models.Identity{ID: st.OwnerID, Email: st.Members[0].Email})
	}
	identities = append(identities, models.Identity{ID: "seed-newcomer", Email: "newcomer@example.com"})

	for _, identity := range identities {
		token, err := jwtManager.GenerateToken(identity.ID, identity.Email)
		if err != nil {
			log.Printf("Warning: Failed to sign token for %s: %v", identity.Email, err)
			continue
		}
		log.Printf("Token for %s: %s", identity.Email, token)
	}
}

func demoTeams() []seedTeam {
	return []seedTeam{
		{
			OwnerID: "seed-asha",
			Name:    "Quantum",
			Track:   models.TrackAI,
			UPI:     "UPI402211778",
			Status:  models.PaymentVerified,
			Members: []models.MemberInput{
				{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210", College: "IIT Bombay", RollNo: "21B1001", Branch: "CSE", FoodPreference: models.FoodVeg, Accommodation: true},
				{Name: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543211", College: "IIT Bombay", FoodPreference: models.FoodNonVeg},
				{Name: "Meera Iyer", Email: "meera@example.com", Phone: "9876543212", College: "IIT Bombay", FoodPreference: models.FoodVeg, Accommodation: true},
			},
			CheckedIn: 2,
		},
		{
			OwnerID: "seed-kabir",
			Name:    "Byte Busters",
			Track:   models.TrackIoT,
			UPI:     "UPI509933120",
			Status:  models.PaymentPending,
			Members: []models.MemberInput{
				{Name: "Kabir Shah", Email: "kabir@example.com", Phone: "9123456780", College: "NIT Trichy", RollNo: "106121045", Branch: "ECE", FoodPreference: models.FoodNonVeg},
				{Name: "Neha Gupta", Email: "neha@example.com", Phone: "9123456781", College: "NIT Trichy", FoodPreference: models.FoodVeg},
			},
		},
		{
			OwnerID: "seed-lena",
			Name:    "Ledger Lords",
			Track:   models.TrackBlockchain,
			UPI:     "UPI778800341",
			Status:  models.PaymentRejected,
			Members: []models.MemberInput{
				{Name: "Lena Dsouza", Email: "lena@example.com", Phone: "9988776655", College: "BITS Goa", RollNo: "2021A7PS0001G", Branch: "CS", FoodPreference: models.FoodVeg},
				{Name: "Omar Khan", Email: "omar@example.com", Phone: "9988776654", College: "BITS Goa", FoodPreference: models.FoodNonVeg, Accommodation: true},
				{Name: "Priya Nair", Email: "priya@example.com", Phone: "9988776653", College: "BITS Goa", FoodPreference: models.FoodVeg},
				{Name: "Sam Thomas", Email: "sam@example.com", Phone: "9988776652", College: "BITS Goa", FoodPreference: models.FoodNonVeg},
			},
		},
	}
}
