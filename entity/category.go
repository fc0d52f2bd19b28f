package entity

import "strings"

// Bucket names a category in the final result.
type Bucket string

const (
	BucketDiseases    Bucket = "diseases"
	BucketMedications Bucket = "medications"
	BucketSymptoms    Bucket = "symptoms"
	BucketProcedures  Bucket = "procedures"
)

// categoryRule maps a label substring to a bucket.
type categoryRule struct {
	key    string
	bucket Bucket
}

// categoryRules is evaluated in declared order; the first rule whose key is
// a substring of the label wins. The order is significant and must stay
// exactly as declared, so it lives in a slice rather than a map.
var categoryRules = []categoryRule{
	{"DISEASE", BucketDiseases},
	{"DRUG", BucketMedications},
	{"SYMPTOM", BucketSymptoms},
	{"PROCEDURE", BucketProcedures},
	{"Diagnostic_procedure", BucketProcedures},
	{"Medication", BucketMedications},
	{"Sign_symptom", BucketSymptoms},
}

// Category classifies an entity label into a bucket by substring containment.
// A label like "B-DISEASE" matches the DISEASE rule. The second return is
// false when no rule matches and the entity belongs in the "other" bucket.
func Category(label string) (Bucket, bool) {
	for _, rule := range categoryRules {
		if strings.Contains(label, rule.key) {
			return rule.bucket, true
		}
	}
	return "", false
}
