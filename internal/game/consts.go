package game

const (
	SimHz        = 20.0 // server tick rate
	Dt           = 1.0 / SimHz
	UpdateRateHz = 10.0 // per-client WS state pushes

	WorldW = 1200.0
	WorldH = 800.0

	DefaultTau            = 4.0 // avoidance lookahead horizon, >> Dt
	DefaultAgentRadius    = 10.0
	DefaultMaxSpeed       = 60.0 // units/s
	DefaultNeighborRadius = 160.0

	TrailKeepS    = 6.0 // seconds of trail to keep per agent
	ArriveEps     = 2.0 // goal capture distance
	RoomMaxAgents = 256
)
