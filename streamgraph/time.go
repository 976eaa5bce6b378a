package streamgraph

// TimeCharacteristic is the graph-wide notion of time every operator's
// stream config inherits.
type TimeCharacteristic string

const (
	EventTime      TimeCharacteristic = "EventTime"
	IngestionTime  TimeCharacteristic = "IngestionTime"
	ProcessingTime TimeCharacteristic = "ProcessingTime"
)
