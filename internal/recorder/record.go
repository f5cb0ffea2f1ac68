package recorder

import (
	"main/internal/market"
	"main/internal/model"
)

// eventRecord is the JSONL form of one market event. Prices stay in
// their scaled-integer representation so a replayed run is bit-exact.
type eventRecord struct {
	Time         int64               `json:"time"`
	Observations []observationRecord `json:"obs"`
}

type observationRecord struct {
	Asset  string `json:"asset"`
	Price  int64  `json:"price"`
	Open   int64  `json:"open,omitempty"`
	High   int64  `json:"high,omitempty"`
	Low    int64  `json:"low,omitempty"`
	Close  int64  `json:"close,omitempty"`
	Volume int64  `json:"volume,omitempty"`
	Bar    bool   `json:"bar,omitempty"`
}

func toRecord(ev *market.Event) eventRecord {
	rec := eventRecord{
		Time:         ev.Time,
		Observations: make([]observationRecord, 0, ev.Len()),
	}
	for _, obs := range ev.Observations() {
		rec.Observations = append(rec.Observations, observationRecord{
			Asset:  obs.Asset,
			Price:  int64(obs.Price),
			Open:   int64(obs.Open),
			High:   int64(obs.High),
			Low:    int64(obs.Low),
			Close:  int64(obs.Close),
			Volume: int64(obs.Volume),
			Bar:    obs.Bar,
		})
	}
	return rec
}

func fromRecord(rec eventRecord) *market.Event {
	ev := market.NewEvent(rec.Time)
	for _, o := range rec.Observations {
		ev.Add(market.Observation{
			Asset:  o.Asset,
			Price:  model.Price(o.Price),
			Open:   model.Price(o.Open),
			High:   model.Price(o.High),
			Low:    model.Price(o.Low),
			Close:  model.Price(o.Close),
			Volume: model.Quantity(o.Volume),
			Bar:    o.Bar,
		})
	}
	return ev
}
