// Package streak computes habit streaks from a snapshot of daily logs.
//
// A day counts for a habit when a log exists for that date and the habit's
// flag in it is true. Two days are consecutive when their calendar dates are
// exactly one day apart.
//
// The two measures deliberately differ in how they treat the timeline:
//
//   - Current is the unbroken run of counting days ending at the most recent
//     log, however far that log is from today. Days with no log at all before
//     that point are never inspected.
//   - Longest scans full history, and every logged day (counting or not) is an
//     anchor for gap measurement. A run never bridges a logged day on which the
//     habit was not completed.
//
// Functions here are pure: they never mutate their input and hold no state
// between calls, so recomputing on an unchanged snapshot is idempotent.
package streak
