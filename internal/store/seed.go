package store

import "github.com/tpdc055/sheriff/internal/domain"

// Seed returns the fixture writ set installed on first run when no durable
// snapshot exists.
func Seed() []domain.Writ {
	return []domain.Writ{
		{
			ID:              "wrt-001",
			WritNumber:      "WRT/2024/001234",
			CaseID:          "case-001",
			CaseNumber:      "HCCC/123/2024",
			OrderID:         "ord-001",
			Type:            domain.WritExecution,
			Status:          domain.StatusInProgress,
			ServiceStatus:   domain.ServiceAttempted,
			IssuedDate:      "2024-02-01",
			ExpiryDate:      "2024-03-01",
			AssignedOfficer: "James Mwangi",
			TargetParty:     "Acme Trading Ltd",
			TargetAddress:   "Riverside Drive, Plot 45, Nairobi",
			Instructions:    "Execute judgment for KES 2,500,000. Seize movable assets if payment not made. Priority execution.",
			Priority:        "high",
			ServiceAttempts: []domain.ServiceAttempt{
				{
					ID:             "sa-001",
					WritID:         "wrt-001",
					Date:           "2024-02-05",
					Officer:        "James Mwangi",
					Outcome:        domain.OutcomeNotFound,
					Notes:          "Premises closed. Security guard indicated business relocated.",
					Location:       "Riverside Drive, Plot 45",
					GPSCoordinates: "-1.263200, 36.808200",
				},
				{
					ID:             "sa-002",
					WritID:         "wrt-001",
					Date:           "2024-02-08",
					Officer:        "James Mwangi",
					Outcome:        domain.OutcomeRefused,
					Notes:          "Director present but refused to accept service. Witness: Security guard Michael Otieno",
					Location:       "New location: Karen Business Park, Unit 12",
					GPSCoordinates: "-1.320700, 36.707300",
					WitnessName:    "Michael Otieno",
				},
			},
			SeizureItems: []domain.SeizureItem{
				{
					ID:             "sz-001",
					WritID:         "wrt-001",
					Description:    "Office furniture set - 3 desks, 6 chairs, filing cabinets",
					EstimatedValue: 150000,
					Condition:      "Good condition, minimal wear",
					Location:       "Central Police Station - Evidence Room A",
					Status:         "stored",
					SeizedDate:     "2024-02-08",
				},
				{
					ID:             "sz-002",
					WritID:         "wrt-001",
					Description:    "HP LaserJet Printer and Dell Desktop Computer",
					EstimatedValue: 85000,
					Condition:      "Excellent working condition",
					Location:       "Central Police Station - Evidence Room A",
					Status:         "stored",
					SeizedDate:     "2024-02-08",
				},
			},
			Fees: []domain.EnforcementFee{
				{ID: "fee-001", WritID: "wrt-001", Description: "Writ execution fee", Amount: 5000, Paid: true, PaidDate: "2024-02-01", ReceiptNumber: "RCP-001234"},
				{ID: "fee-002", WritID: "wrt-001", Description: "Service attempt fees (2 attempts)", Amount: 4000, Paid: true, PaidDate: "2024-02-09", ReceiptNumber: "RCP-001240"},
				{ID: "fee-003", WritID: "wrt-001", Description: "Seizure and storage fee", Amount: 7500, Paid: false},
			},
			TotalFeesCharged:   16500,
			TotalFeesCollected: 9000,
		},
		{
			ID:              "wrt-002",
			WritNumber:      "WRT/2024/001567",
			CaseID:          "case-002",
			CaseNumber:      "CMCC/456/2024",
			OrderID:         "ord-002",
			Type:            domain.WritAttachment,
			Status:          domain.StatusPending,
			ServiceStatus:   domain.ServicePending,
			IssuedDate:      "2024-02-10",
			ExpiryDate:      "2024-03-10",
			AssignedOfficer: "James Mwangi",
			TargetParty:     "John Kamau",
			TargetAddress:   "Muthaiga Estate, House No. 67, Nairobi",
			Instructions:    "Attach property to secure debt of KES 850,000. Serve notice of attachment.",
			Priority:        "medium",
			Fees: []domain.EnforcementFee{
				{ID: "fee-004", WritID: "wrt-002", Description: "Writ execution fee", Amount: 5000, Paid: true, PaidDate: "2024-02-10", ReceiptNumber: "RCP-001245"},
			},
			TotalFeesCharged:   5000,
			TotalFeesCollected: 5000,
		},
		{
			ID:              "wrt-003",
			WritNumber:      "WRT/2024/001890",
			CaseID:          "case-003",
			CaseNumber:      "HCCC/789/2024",
			OrderID:         "ord-003",
			Type:            domain.WritPossession,
			Status:          domain.StatusInProgress,
			ServiceStatus:   domain.ServiceServed,
			IssuedDate:      "2024-02-12",
			ExpiryDate:      "2024-03-12",
			AssignedOfficer: "James Mwangi",
			TargetParty:     "Mary Njeri",
			TargetAddress:   "Kilimani, Argwings Kodhek Road, Apt 5B",
			Instructions:    "Evict tenant and deliver possession to landlord. Ensure peaceful handover.",
			Priority:        "urgent",
			ServiceAttempts: []domain.ServiceAttempt{
				{
					ID:             "sa-003",
					WritID:         "wrt-003",
					Date:           "2024-02-13",
					Officer:        "James Mwangi",
					Outcome:        domain.OutcomeServed,
					Notes:          "Notice served to tenant. Informed of 7-day grace period. Tenant acknowledged receipt.",
					Location:       "Kilimani, Argwings Kodhek Road, Apt 5B",
					GPSCoordinates: "-1.288400, 36.786100",
					WitnessName:    "Building caretaker - David Odhiambo",
				},
			},
			Fees: []domain.EnforcementFee{
				{ID: "fee-005", WritID: "wrt-003", Description: "Writ execution fee", Amount: 5000, Paid: true, PaidDate: "2024-02-12", ReceiptNumber: "RCP-001250"},
				{ID: "fee-006", WritID: "wrt-003", Description: "Service fee", Amount: 2000, Paid: true, PaidDate: "2024-02-13", ReceiptNumber: "RCP-001252"},
			},
			TotalFeesCharged:   7000,
			TotalFeesCollected: 7000,
		},
		{
			ID:              "wrt-004",
			WritNumber:      "WRT/2024/002001",
			CaseID:          "case-004",
			CaseNumber:      "CMCC/234/2024",
			OrderID:         "ord-004",
			Type:            domain.WritSearch,
			Status:          domain.StatusPending,
			ServiceStatus:   domain.ServicePending,
			IssuedDate:      "2024-02-15",
			ExpiryDate:      "2024-02-20",
			AssignedOfficer: "James Mwangi",
			TargetParty:     "Tech Solutions Kenya Ltd",
			TargetAddress:   "Westlands, Chiromo Road, Office Block C",
			Instructions:    "Search premises for specified documents related to fraud case. Coordinate with investigating officer.",
			Priority:        "urgent",
			Fees: []domain.EnforcementFee{
				{ID: "fee-007", WritID: "wrt-004", Description: "Search warrant execution fee", Amount: 3000, Paid: false},
			},
			TotalFeesCharged:   3000,
			TotalFeesCollected: 0,
		},
		{
			ID:              "wrt-005",
			WritNumber:      "WRT/2024/002134",
			CaseID:          "case-005",
			CaseNumber:      "HCCC/567/2023",
			OrderID:         "ord-005",
			Type:            domain.WritExecution,
			Status:          domain.StatusExecuted,
			ServiceStatus:   domain.ServiceServed,
			IssuedDate:      "2024-01-15",
			ExpiryDate:      "2024-02-15",
			AssignedOfficer: "James Mwangi",
			TargetParty:     "Global Imports Co.",
			TargetAddress:   "Industrial Area, Mombasa Road, Warehouse 23",
			Instructions:    "Execute judgment for KES 1,200,000. Payment received in full.",
			Priority:        "low",
			ServiceAttempts: []domain.ServiceAttempt{
				{
					ID:             "sa-004",
					WritID:         "wrt-005",
					Date:           "2024-01-20",
					Officer:        "James Mwangi",
					Outcome:        domain.OutcomeServed,
					Notes:          "Writ served. Company director agreed to payment plan. Full payment received.",
					Location:       "Industrial Area, Mombasa Road, Warehouse 23",
					GPSCoordinates: "-1.320100, 36.852000",
				},
			},
			Fees: []domain.EnforcementFee{
				{ID: "fee-008", WritID: "wrt-005", Description: "Writ execution fee", Amount: 5000, Paid: true, PaidDate: "2024-01-15", ReceiptNumber: "RCP-001100"},
				{ID: "fee-009", WritID: "wrt-005", Description: "Service fee", Amount: 2000, Paid: true, PaidDate: "2024-01-20", ReceiptNumber: "RCP-001105"},
			},
			TotalFeesCharged:   7000,
			TotalFeesCollected: 7000,
		},
	}
}
