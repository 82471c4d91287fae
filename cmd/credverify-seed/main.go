// Command credverify-seed loads a small demonstration registry into the
// Postgres store: five institutions and seven certificates covering each
// degree type the matcher is exercised against.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"credverify/internal/config"
	"credverify/internal/domain"
	"credverify/internal/infra/db"
)

type seedCertificate struct {
	institutionCode string
	cert            domain.Certificate
}

func main() {
	cfg := config.FromEnv()

	store, err := db.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	repo := db.NewRegistryRepository(store)

	ctx := context.Background()

	byCode := map[string]string{}
	for _, inst := range institutions() {
		created, err := repo.CreateInstitution(ctx, inst)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				log.Printf("institution %s already present, skipping", inst.Code)
				existing, lookupErr := findInstitution(ctx, repo, inst.Code)
				if lookupErr != nil {
					log.Fatalf("resolve existing institution %s: %v", inst.Code, lookupErr)
				}
				byCode[inst.Code] = existing.ID
				continue
			}
			log.Fatalf("create institution %s: %v", inst.Code, err)
		}
		byCode[inst.Code] = created.ID
		log.Printf("created institution %s (%s)", created.Name, created.Code)
	}

	for _, seed := range certificates() {
		cert := seed.cert
		cert.InstitutionID = byCode[seed.institutionCode]
		if _, err := repo.CreateCertificate(ctx, cert); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				log.Printf("certificate %s already present, skipping", cert.CertificateNumber)
				continue
			}
			log.Fatalf("create certificate %s: %v", cert.CertificateNumber, err)
		}
		log.Printf("created certificate %s for %s", cert.CertificateNumber, cert.StudentName)
	}

	log.Printf("seed complete")
}

func findInstitution(ctx context.Context, repo *db.RegistryRepository, code string) (domain.Institution, error) {
	all, err := repo.ListInstitutions(ctx)
	if err != nil {
		return domain.Institution{}, err
	}
	for _, inst := range all {
		if inst.Code == code {
			return inst, nil
		}
	}
	return domain.Institution{}, domain.ErrNotFound
}

func institutions() []domain.Institution {
	return []domain.Institution{
		{
			Name:            "Ranchi University",
			Code:            "RU001",
			Type:            "University",
			Address:         "Ranchi, Jharkhand",
			ContactEmail:    "info@ranchiuniversity.ac.in",
			Phone:           "+91-651-2234567",
			EstablishedYear: 1960,
			IsActive:        true,
		},
		{
			Name:            "Birla Institute of Technology",
			Code:            "BIT001",
			Type:            "Institute",
			Address:         "Mesra, Ranchi, Jharkhand",
			ContactEmail:    "admissions@bitmesra.ac.in",
			Phone:           "+91-651-2275444",
			EstablishedYear: 1955,
			IsActive:        true,
		},
		{
			Name:            "Central University of Jharkhand",
			Code:            "CUJ001",
			Type:            "University",
			Address:         "Brambe, Ranchi, Jharkhand",
			ContactEmail:    "info@cuj.ac.in",
			Phone:           "+91-651-2835577",
			EstablishedYear: 2009,
			IsActive:        true,
		},
		{
			Name:            "St. Xaviers College",
			Code:            "SXC001",
			Type:            "College",
			Address:         "Doranda, Ranchi, Jharkhand",
			ContactEmail:    "info@stxaviersranchi.ac.in",
			Phone:           "+91-651-2460987",
			EstablishedYear: 1944,
			IsActive:        true,
		},
		{
			Name:            "Government Polytechnic Ranchi",
			Code:            "GPR001",
			Type:            "Polytechnic",
			Address:         "Ranchi, Jharkhand",
			ContactEmail:    "gpr@gov.jh.in",
			Phone:           "+91-651-2567890",
			EstablishedYear: 1960,
			IsActive:        true,
		},
	}
}

func certificates() []seedCertificate {
	return []seedCertificate{
		{
			institutionCode: "RU001",
			cert: domain.Certificate{
				CertificateNumber: "RU/2023/BSC/001234",
				StudentName:       "Rahul Kumar Singh",
				RollNumber:        "RU23BSC001234",
				CourseName:        "Bachelor of Science in Computer Science",
				DegreeType:        "Bachelor",
				PassingYear:       2023,
				Grade:             "A",
				Percentage:        ptr(85.5),
				IssueDate:         date(2023, time.June, 15),
			},
		},
		{
			institutionCode: "RU001",
			cert: domain.Certificate{
				CertificateNumber: "RU/2022/BA/005678",
				StudentName:       "Priya Kumari",
				RollNumber:        "RU22BA005678",
				CourseName:        "Bachelor of Arts in English",
				DegreeType:        "Bachelor",
				PassingYear:       2022,
				Grade:             "B",
				Percentage:        ptr(75.2),
				IssueDate:         date(2022, time.July, 20),
			},
		},
		{
			institutionCode: "BIT001",
			cert: domain.Certificate{
				CertificateNumber: "BIT/2023/BTECH/098765",
				StudentName:       "Ankit Sharma",
				RollNumber:        "BIT23BTECH098765",
				CourseName:        "Bachelor of Technology in Computer Science and Engineering",
				DegreeType:        "Bachelor",
				PassingYear:       2023,
				Grade:             "A+",
				Percentage:        ptr(92.3),
				IssueDate:         date(2023, time.May, 30),
			},
		},
		{
			institutionCode: "BIT001",
			cert: domain.Certificate{
				CertificateNumber: "BIT/2023/MTECH/012345",
				StudentName:       "Deepika Verma",
				RollNumber:        "BIT23MTECH012345",
				CourseName:        "Master of Technology in Information Technology",
				DegreeType:        "Master",
				PassingYear:       2023,
				Grade:             "A",
				Percentage:        ptr(88.7),
				IssueDate:         date(2023, time.June, 10),
			},
		},
		{
			institutionCode: "CUJ001",
			cert: domain.Certificate{
				CertificateNumber: "CUJ/2023/MA/567890",
				StudentName:       "Ravi Kumar",
				RollNumber:        "CUJ23MA567890",
				CourseName:        "Master of Arts in Economics",
				DegreeType:        "Master",
				PassingYear:       2023,
				Grade:             "B+",
				Percentage:        ptr(78.9),
				IssueDate:         date(2023, time.July, 5),
			},
		},
		{
			institutionCode: "SXC001",
			cert: domain.Certificate{
				CertificateNumber: "SXC/2023/BCOM/111222",
				StudentName:       "Sunita Devi",
				RollNumber:        "SXC23BCOM111222",
				CourseName:        "Bachelor of Commerce",
				DegreeType:        "Bachelor",
				PassingYear:       2023,
				Grade:             "A",
				Percentage:        ptr(82.1),
				IssueDate:         date(2023, time.June, 25),
			},
		},
		{
			institutionCode: "GPR001",
			cert: domain.Certificate{
				CertificateNumber: "GPR/2023/DIP/333444",
				StudentName:       "Amit Kumar",
				RollNumber:        "GPR23DIP333444",
				CourseName:        "Diploma in Mechanical Engineering",
				DegreeType:        "Diploma",
				PassingYear:       2023,
				Grade:             "B",
				Percentage:        ptr(72.5),
				IssueDate:         date(2023, time.August, 1),
			},
		},
	}
}

func ptr(v float64) *float64 { return &v }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
