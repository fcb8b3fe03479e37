package region

// gamelift builds a region served by the standard GameLift endpoint pair.
func gamelift(id, code string, stable bool) Region {
	return Region{
		ID:   id,
		Code: code,
		Hosts: []string{
			"gamelift." + code + ".amazonaws.com",
			"gamelift-ping." + code + ".api.aws",
		},
		Stable: stable,
	}
}

// gameliftChina builds a region in the isolated China partition.
func gameliftChina(id, code string, stable bool) Region {
	return Region{
		ID:   id,
		Code: code,
		Hosts: []string{
			"gamelift." + code + ".amazonaws.com.cn",
			"gamelift-ping." + code + ".api.amazonwebservices.com.cn",
		},
		Stable: stable,
	}
}

var defaultCatalog = MustCatalog(
	gamelift("Europe (London)", "eu-west-2", true),
	gamelift("Europe (Ireland)", "eu-west-1", true),
	gamelift("Europe (Frankfurt am Main)", "eu-central-1", true),
	gamelift("Europe (Paris)", "eu-west-3", false),
	gamelift("US East (N. Virginia)", "us-east-1", true),
	gamelift("US East (Ohio)", "us-east-2", true),
	gamelift("US West (N. California)", "us-west-1", true),
	gamelift("US West (Oregon)", "us-west-2", true),
	gamelift("Canada (Central)", "ca-central-1", true),
	gamelift("South America (São Paulo)", "sa-east-1", true),
	gamelift("Asia Pacific (Tokyo)", "ap-northeast-1", true),
	gamelift("Asia Pacific (Seoul)", "ap-northeast-2", true),
	gamelift("Asia Pacific (Mumbai)", "ap-south-1", true),
	gamelift("Asia Pacific (Singapore)", "ap-southeast-1", true),
	gamelift("Asia Pacific (Hong Kong)", "ap-east-1", false),
	gamelift("Asia Pacific (Sydney)", "ap-southeast-2", true),
	gameliftChina("China (Beijing)", "cn-north-1", true),
	gameliftChina("China (Ningxia)", "cn-northwest-1", true),
)

// Default returns the built-in region catalog. Every group holding an
// unstable region also holds a stable one.
func Default() *Catalog {
	return defaultCatalog
}
