package engine

import "strings"

var allProjectTypes = []string{ProjectWebApp, ProjectMobileApp, ProjectAPI, ProjectDashboard}

// CategoryProjectTypes lists, per tool category, the project types the category suits.
// Keys are lower-case; categories missing from the table earn no category bonus.
var CategoryProjectTypes = map[string][]string{
	"frontend":           {ProjectWebApp, ProjectDashboard},
	"frontend framework": {ProjectWebApp, ProjectDashboard},
	"ui library":         {ProjectWebApp, ProjectDashboard},
	"styling":            {ProjectWebApp, ProjectDashboard, ProjectMobileApp},
	"charting":           {ProjectDashboard},
	"mobile":             {ProjectMobileApp},
	"mobile framework":   {ProjectMobileApp},
	"backend":            allProjectTypes,
	"backend framework":  allProjectTypes,
	"api framework":      {ProjectAPI, ProjectWebApp, ProjectMobileApp},
	"database":           allProjectTypes,
	"vector database":    allProjectTypes,
	"cache":              {ProjectAPI, ProjectWebApp, ProjectDashboard},
	"authentication":     allProjectTypes,
	"hosting":            {ProjectWebApp, ProjectDashboard, ProjectAPI},
	"deployment":         {ProjectWebApp, ProjectDashboard, ProjectAPI},
	"storage":            allProjectTypes,
	"ai/ml api":          allProjectTypes,
	"payments":           {ProjectWebApp, ProjectMobileApp, ProjectAPI},
	"email service":      {ProjectWebApp, ProjectAPI, ProjectDashboard},
	"analytics":          {ProjectWebApp, ProjectDashboard, ProjectMobileApp},
	"monitoring":         {ProjectAPI, ProjectWebApp, ProjectDashboard},
	"search":             allProjectTypes,
	"realtime":           allProjectTypes,
	"testing":            allProjectTypes,
}

// CategoryFits reports whether category suits projectType per CategoryProjectTypes.
func CategoryFits(category, projectType string) bool {
	for _, t := range CategoryProjectTypes[normalizeCategory(category)] {
		if t == projectType {
			return true
		}
	}
	return false
}

// usageBaseRates is the monthly usage volume assumed for pay-as-you-go tools, per category.
var usageBaseRates = map[string]float64{
	"ai/ml api":       10000,
	"search":          5000,
	"vector database": 5000,
	"database":        3000,
	"hosting":         2000,
	"deployment":      2000,
	"storage":         2000,
	"analytics":       2000,
	"monitoring":      1500,
	"authentication":  1000,
	"realtime":        1000,
	"payments":        500,
	"email service":   200,
}

const defaultUsageBaseRate = 1000

func usageBaseRate(category string) float64 {
	if rate, ok := usageBaseRates[normalizeCategory(category)]; ok {
		return rate
	}
	return defaultUsageBaseRate
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
