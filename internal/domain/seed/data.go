package seed

// Static pools the generator draws from. Realism is not a goal; the values
// only need to look plausible in a demo environment.

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Maria", "Wei", "Priya",
	"Ahmed", "Fatima", "Olga", "Hiroshi",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Nguyen", "Patel",
	"Kim", "Chen", "Singh", "Ali",
}

var streets = []string{
	"Maple Street", "Oak Avenue", "Cedar Lane", "Pine Road", "Elm Drive",
	"Washington Boulevard", "Lakeview Terrace", "Sunset Way", "Ridge Court",
	"Harbor Street",
}

var cities = []string{
	"Springfield", "Riverside", "Franklin", "Greenville", "Bristol",
	"Clinton", "Fairview", "Salem", "Madison", "Georgetown",
}

var states = []string{
	"CA", "NY", "TX", "FL", "IL", "PA", "OH", "GA", "NC", "MI", "NJ", "WA",
}

var treatmentNames = []string{
	"CPAP Therapy", "BiPAP Therapy", "Oral Appliance Therapy",
	"Positional Therapy", "CBT-I Program", "Modafinil", "Melatonin",
	"Weight Management Program",
}

var treatmentTypes = []string{
	"Device", "Medication", "Behavioral", "Surgical",
}

var frequencies = []string{
	"Nightly", "Twice Daily", "As Needed", "Weekly",
}

var insuranceProviders = []string{
	"Blue Shield", "Aetna", "United Health", "Cigna", "Kaiser Permanente",
	"Humana", "Anthem",
}

var relationships = []string{
	"Self", "Spouse", "Parent", "Child",
}

var authorizationStatuses = []string{
	"Approved", "Pending", "Denied",
}

var visitNotes = []string{
	"Initial consultation.", "Follow-up on therapy compliance.",
	"Review of sleep study results.", "Equipment fitting and titration.",
	"Annual check-in.",
}
