package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Source streams the committed transaction log for a batch rebuild.
type Source interface {
	StreamRecords(ctx context.Context, fn func(Record) error) error
}

// Engine maintains indexed aggregates over the transaction log. Writers call
// Apply once per committed transaction; Rebuild recomputes everything from
// the log and must converge to the same values as the incremental path.
// A full rebuild is a cold-start or consistency-check operation only.
type Engine struct {
	mu  sync.RWMutex
	loc *time.Location

	stations map[uuid.UUID]*stationAgg
	vehicles map[uuid.UUID]*vehicleAgg
	days     map[time.Time]*dayAgg
}

type stationAgg struct {
	name string
	days map[time.Time]*stationDay
}

type stationDay struct {
	petrol float64
	diesel float64
	count  int
	hours  [24]int
}

type vehicleAgg struct {
	registration string
	vehicleType  string
	fuelType     vehicle.FuelType
	ownerName    string
	lastAt       time.Time
	days         map[time.Time]*vehicleDay
}

type vehicleDay struct {
	amount float64
	count  int
}

type dayAgg struct {
	petrol   float64
	diesel   float64
	count    int
	vehicles map[uuid.UUID]struct{}
}

func NewEngine(loc *time.Location) *Engine {
	return &Engine{
		loc:      loc,
		stations: make(map[uuid.UUID]*stationAgg),
		vehicles: make(map[uuid.UUID]*vehicleAgg),
		days:     make(map[time.Time]*dayAgg),
	}
}

// Apply folds one committed transaction into the indexes. Idempotency is the
// caller's concern: a record must be applied exactly once.
func (e *Engine) Apply(rec Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(rec)
}

func (e *Engine) apply(rec Record) {
	local := rec.Timestamp.In(e.loc)
	day := e.dayOf(local)

	st, ok := e.stations[rec.StationID]
	if !ok {
		st = &stationAgg{name: rec.StationName, days: make(map[time.Time]*stationDay)}
		e.stations[rec.StationID] = st
	}
	sd, ok := st.days[day]
	if !ok {
		sd = &stationDay{}
		st.days[day] = sd
	}
	addFuel(&sd.petrol, &sd.diesel, rec.FuelType, rec.Amount)
	sd.count++
	sd.hours[local.Hour()]++

	v, ok := e.vehicles[rec.VehicleID]
	if !ok {
		v = &vehicleAgg{
			registration: rec.Registration,
			vehicleType:  rec.VehicleType,
			fuelType:     rec.FuelType,
			ownerName:    rec.OwnerName,
			days:         make(map[time.Time]*vehicleDay),
		}
		e.vehicles[rec.VehicleID] = v
	}
	if rec.Timestamp.After(v.lastAt) {
		v.lastAt = rec.Timestamp
	}
	vd, ok := v.days[day]
	if !ok {
		vd = &vehicleDay{}
		v.days[day] = vd
	}
	vd.amount += rec.Amount
	vd.count++

	d, ok := e.days[day]
	if !ok {
		d = &dayAgg{vehicles: make(map[uuid.UUID]struct{})}
		e.days[day] = d
	}
	addFuel(&d.petrol, &d.diesel, rec.FuelType, rec.Amount)
	d.count++
	d.vehicles[rec.VehicleID] = struct{}{}
}

// Rebuild recomputes all aggregates from the transaction log and swaps them
// in atomically. Readers keep seeing the old indexes until the swap.
func (e *Engine) Rebuild(ctx context.Context, src Source) error {
	fresh := NewEngine(e.loc)
	err := src.StreamRecords(ctx, func(rec Record) error {
		fresh.apply(rec)
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.stations = fresh.stations
	e.vehicles = fresh.vehicles
	e.days = fresh.days
	e.mu.Unlock()
	return nil
}

func (e *Engine) dayOf(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.loc)
}

func addFuel(petrol, diesel *float64, ft vehicle.FuelType, amount float64) {
	if ft == vehicle.FuelDiesel {
		*diesel += amount
	} else {
		*petrol += amount
	}
}

// Consumption aggregates dispensed fuel over an inclusive civil-date range.
// An optional fuel type narrows totals and the transaction count but not the
// station/peak-day rankings' date range.
func (e *Engine) Consumption(start, end time.Time, fuelFilter *vehicle.FuelType) ConsumptionReport {
	e.mu.RLock()
	defer e.mu.RUnlock()

	report := ConsumptionReport{PeriodStart: start, PeriodEnd: end}

	var peak *DayTotal
	for day := e.dayOf(start.In(e.loc)); !day.After(end.In(e.loc)); day = day.AddDate(0, 0, 1) {
		d, ok := e.days[day]
		if !ok {
			continue
		}
		dayTotal := 0.0
		if fuelFilter == nil || *fuelFilter == vehicle.FuelPetrol {
			report.TotalPetrol += d.petrol
			dayTotal += d.petrol
		}
		if fuelFilter == nil || *fuelFilter == vehicle.FuelDiesel {
			report.TotalDiesel += d.diesel
			dayTotal += d.diesel
		}
		if fuelFilter == nil {
			report.TransactionCount += d.count
		}
		if dayTotal > 0 && (peak == nil || dayTotal > peak.Amount) {
			peak = &DayTotal{Date: day, Amount: dayTotal}
		}
	}
	if fuelFilter != nil {
		report.TransactionCount = e.countTransactionsLocked(start, end, *fuelFilter)
	}

	report.TotalFuel = report.TotalPetrol + report.TotalDiesel
	if report.TransactionCount > 0 {
		report.AveragePerTx = report.TotalFuel / float64(report.TransactionCount)
	}
	report.PeakDay = peak
	report.MostActiveStation = e.mostActiveStationLocked(start, end)
	return report
}

func (e *Engine) countTransactionsLocked(start, end time.Time, ft vehicle.FuelType) int {
	count := 0
	for _, v := range e.vehicles {
		if v.fuelType != ft {
			continue
		}
		for day, vd := range v.days {
			if inRange(day, e.dayOf(start.In(e.loc)), e.dayOf(end.In(e.loc))) {
				count += vd.count
			}
		}
	}
	return count
}

func (e *Engine) mostActiveStationLocked(start, end time.Time) string {
	startDay := e.dayOf(start.In(e.loc))
	endDay := e.dayOf(end.In(e.loc))

	bestName := ""
	bestCount := 0
	for _, st := range e.stations {
		count := 0
		for day, sd := range st.days {
			if inRange(day, startDay, endDay) {
				count += sd.count
			}
		}
		if count == 0 {
			continue
		}
		if count > bestCount || (count == bestCount && st.name < bestName) {
			bestName = st.name
			bestCount = count
		}
	}
	return bestName
}

// StationPerformance ranks every station that saw traffic in the range.
func (e *Engine) StationPerformance(start, end time.Time) StationPerformanceReport {
	e.mu.RLock()
	defer e.mu.RUnlock()

	startDay := e.dayOf(start.In(e.loc))
	endDay := e.dayOf(end.In(e.loc))

	report := StationPerformanceReport{PeriodStart: start, PeriodEnd: end}
	for id, st := range e.stations {
		stats := e.stationStatsLocked(id, st, startDay, endDay)
		if stats.TransactionCount == 0 {
			continue
		}
		report.Stations = append(report.Stations, stats)
		report.TotalTransactions += stats.TransactionCount
		report.TotalFuelDispensed += stats.TotalDispensed
	}

	sort.Slice(report.Stations, func(i, j int) bool {
		a, b := report.Stations[i], report.Stations[j]
		if a.TransactionCount != b.TransactionCount {
			return a.TransactionCount > b.TransactionCount
		}
		return a.StationName < b.StationName
	})

	report.ActiveStationCount = len(report.Stations)
	if n := len(report.Stations); n > 0 {
		report.TopStation = report.Stations[0].StationName
		report.LeastActiveStation = report.Stations[n-1].StationName
		report.AvgTxPerStation = float64(report.TotalTransactions) / float64(n)
		report.AvgFuelPerStation = report.TotalFuelDispensed / float64(n)
	}
	return report
}

// StationStatsFor returns the single-station view used by the station
// transaction history dashboard.
func (e *Engine) StationStatsFor(stationID uuid.UUID, start, end time.Time) (StationStats, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st, ok := e.stations[stationID]
	if !ok {
		return StationStats{}, false
	}
	stats := e.stationStatsLocked(stationID, st, e.dayOf(start.In(e.loc)), e.dayOf(end.In(e.loc)))
	return stats, true
}

func (e *Engine) stationStatsLocked(id uuid.UUID, st *stationAgg, startDay, endDay time.Time) StationStats {
	stats := StationStats{StationID: id, StationName: st.name}

	var peakDay *DayTotal
	var hours [24]int
	for day, sd := range st.days {
		if !inRange(day, startDay, endDay) {
			continue
		}
		stats.TotalPetrol += sd.petrol
		stats.TotalDiesel += sd.diesel
		stats.TransactionCount += sd.count
		for h, c := range sd.hours {
			hours[h] += c
		}
		dayTotal := sd.petrol + sd.diesel
		// Earliest date wins ties.
		if peakDay == nil || dayTotal > peakDay.Amount ||
			(dayTotal == peakDay.Amount && day.Before(peakDay.Date)) {
			peakDay = &DayTotal{Date: day, Amount: dayTotal}
		}
	}
	stats.TotalDispensed = stats.TotalPetrol + stats.TotalDiesel
	stats.PeakDay = peakDay

	// Lowest hour wins ties.
	best := -1
	for h := 0; h < 24; h++ {
		if hours[h] > 0 && (best < 0 || hours[h] > hours[best]) {
			best = h
		}
	}
	if best >= 0 {
		stats.PeakHour = &HourCount{Hour: best, Count: hours[best]}
	}
	return stats
}

// TopConsumers ranks vehicles by fuel consumed in the range: total desc,
// then transaction count desc, then registration asc.
func (e *Engine) TopConsumers(n int, start, end time.Time) []TopConsumer {
	e.mu.RLock()
	defer e.mu.RUnlock()

	startDay := e.dayOf(start.In(e.loc))
	endDay := e.dayOf(end.In(e.loc))

	consumers := make([]TopConsumer, 0, len(e.vehicles))
	for id, v := range e.vehicles {
		total := 0.0
		count := 0
		for day, vd := range v.days {
			if inRange(day, startDay, endDay) {
				total += vd.amount
				count += vd.count
			}
		}
		if count == 0 {
			continue
		}
		consumers = append(consumers, TopConsumer{
			VehicleID:         id,
			Registration:      v.registration,
			VehicleType:       v.vehicleType,
			FuelType:          v.fuelType.String(),
			OwnerName:         v.ownerName,
			TotalConsumed:     total,
			TransactionCount:  count,
			AveragePerTx:      total / float64(count),
			LastTransactionAt: v.lastAt,
		})
	}

	sort.Slice(consumers, func(i, j int) bool {
		a, b := consumers[i], consumers[j]
		if a.TotalConsumed != b.TotalConsumed {
			return a.TotalConsumed > b.TotalConsumed
		}
		if a.TransactionCount != b.TransactionCount {
			return a.TransactionCount > b.TransactionCount
		}
		return a.Registration < b.Registration
	})

	if n > 0 && len(consumers) > n {
		consumers = consumers[:n]
	}
	return consumers
}

// UsageTrends produces one point per bucket across the whole range,
// including zero-activity buckets.
func (e *Engine) UsageTrends(start, end time.Time, bucket Bucket) []TrendPoint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	startDay := e.dayOf(start.In(e.loc))
	endDay := e.dayOf(end.In(e.loc))

	var points []TrendPoint
	for bucketStart := e.bucketStart(startDay, bucket); !bucketStart.After(endDay); bucketStart = e.nextBucket(bucketStart, bucket) {
		point := TrendPoint{BucketStart: bucketStart}
		vehicles := make(map[uuid.UUID]struct{})

		bucketEnd := e.nextBucket(bucketStart, bucket).AddDate(0, 0, -1)
		for day := bucketStart; !day.After(bucketEnd) && !day.After(endDay); day = day.AddDate(0, 0, 1) {
			if day.Before(startDay) {
				continue
			}
			d, ok := e.days[day]
			if !ok {
				continue
			}
			point.Petrol += d.petrol
			point.Diesel += d.diesel
			point.TransactionCount += d.count
			for id := range d.vehicles {
				vehicles[id] = struct{}{}
			}
		}
		point.Total = point.Petrol + point.Diesel
		point.UniqueVehicles = len(vehicles)
		points = append(points, point)
	}
	return points
}

func (e *Engine) bucketStart(day time.Time, bucket Bucket) time.Time {
	switch bucket {
	case BucketWeek:
		// Weeks start on Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case BucketMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, e.loc)
	default:
		return day
	}
}

func (e *Engine) nextBucket(bucketStart time.Time, bucket Bucket) time.Time {
	switch bucket {
	case BucketWeek:
		return bucketStart.AddDate(0, 0, 7)
	case BucketMonth:
		return bucketStart.AddDate(0, 1, 0)
	default:
		return bucketStart.AddDate(0, 0, 1)
	}
}

func inRange(day, startDay, endDay time.Time) bool {
	return !day.Before(startDay) && !day.After(endDay)
}
