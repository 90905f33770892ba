package genealogy

// Config parameterizes a single generation run.
//
// InfantDeathRate, TotalFertilityRate, ProbabilityOfHavingPartner and
// AverageLife are carried and hashed but not consulted by Generate: the
// single-parent chance is fixed at 10% and every generated person gets one
// child and one partner.
type Config struct {
	Seed                       string
	Original                   PersonInfo
	AverageLife                int8
	InfantDeathRate            Probability
	TotalFertilityRate         Probability
	ProbabilityOfHavingPartner Probability
}
