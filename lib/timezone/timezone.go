package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Rome")
	if err != nil {
		panic(err)
	}
}

// esse3 renders exam dates in italian local time, while the machine
// running the scraper may be anywhere. keep every Year()/Month()/Day()
// computation pinned to Rome.
func Now() time.Time {
	return time.Now().In(Location)
}
