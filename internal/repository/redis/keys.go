package redis

import "fmt"

const ns = "courtbook:v1"

func KeyFacilityList() string {
	return ns + ":facilities"
}

func KeyFacilityDetails(facilityID int64) string {
	return fmt.Sprintf("%s:facility:%d", ns, facilityID)
}

func KeyCourtSlots(courtID int64) string {
	return fmt.Sprintf("%s:court:%d:slots", ns, courtID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelCourtsChanged() string {
	return ns + ":courts:changed"
}
