package calendar

import "time"

// DaysPerWeek is the length of a summary week.
const DaysPerWeek = 7

// Week returns the seven dates of the Sunday-to-Saturday week containing d.
func Week(d Date) ([DaysPerWeek]Date, error) {
	var days [DaysPerWeek]Date
	t, err := d.Time()
	if err != nil {
		return days, err
	}
	start := t.AddDate(0, 0, -int(t.Weekday()-time.Sunday))
	for i := range days {
		days[i] = FromTime(start.AddDate(0, 0, i))
	}
	return days, nil
}

// InRange reports whether d lies within [start, end] inclusive.
func InRange(d, start, end Date) bool {
	return d >= start && d <= end
}
